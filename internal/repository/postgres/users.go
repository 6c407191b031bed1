package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/CoreDX1/File-Explorer-2/internal/core/domain"
	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
	"github.com/CoreDX1/File-Explorer-2/internal/repository"
)

const pgUniqueViolation = "23505"

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"phone",
	"failed_login_attempts",
	"lockout_end",
	"password_reset_token",
	"password_reset_token_expiry",
	"created_at",
	"updated_at",
	"last_login_at",
	"is_active",
	"version",
}

// UserStore implements port.UserStore using PostgreSQL. Insert and Update
// queue pending mutations; SaveChanges commits the whole batch in one
// transaction, so a request either lands all of its writes or none.
type UserStore struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType

	mu      sync.Mutex
	inserts []*domain.User
	updates []domain.User
}

// NewUserStore accepts any executor that satisfies pgExecutor, which lets
// tests substitute a mock pool.
func NewUserStore(exec pgExecutor) *UserStore {
	return &UserStore{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindByID retrieves a user by identifier.
func (s *UserStore) FindByID(ctx context.Context, id int64) (monad.Maybe[domain.User], error) {
	return s.findOne(ctx, squirrel.Eq{"id": id})
}

// FindByEmail retrieves a user by email, matched case-insensitively.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (monad.Maybe[domain.User], error) {
	return s.findOne(ctx, squirrel.Expr("lower(email) = lower(?)", email))
}

// FindByResetToken retrieves the user holding the hashed reset token.
func (s *UserStore) FindByResetToken(ctx context.Context, tokenHash string) (monad.Maybe[domain.User], error) {
	return s.findOne(ctx, squirrel.Eq{"password_reset_token": tokenHash})
}

func (s *UserStore) findOne(ctx context.Context, pred any) (monad.Maybe[domain.User], error) {
	stmt, args, err := s.builder.
		Select(userColumns...).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return monad.None[domain.User](), fmt.Errorf("build select user sql: %w", err)
	}

	row := s.exec.QueryRow(ctx, stmt, args...)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.FailedLoginAttempts,
		&user.LockoutEnd,
		&user.PasswordResetToken,
		&user.PasswordResetTokenExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
		&user.IsActive,
		&user.Version,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return monad.None[domain.User](), nil
		}
		return monad.None[domain.User](), fmt.Errorf("scan user: %w", err)
	}

	return monad.Some(user), nil
}

// Insert queues a new user. The assigned identifier is written back to the
// provided struct when SaveChanges commits.
func (s *UserStore) Insert(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts = append(s.inserts, user)
}

// Update queues a modification of an existing user.
func (s *UserStore) Update(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, user)
}

// SaveChanges flushes queued mutations inside a single transaction and
// returns the number of rows written. An update against a stale Version
// aborts the batch with repository.ErrVersionConflict.
func (s *UserStore) SaveChanges(ctx context.Context) (int, error) {
	s.mu.Lock()
	inserts := s.inserts
	updates := s.updates
	s.inserts = nil
	s.updates = nil
	s.mu.Unlock()

	if len(inserts) == 0 && len(updates) == 0 {
		return 0, nil
	}

	tx, err := s.exec.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin save changes: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	affected := 0

	for _, user := range inserts {
		if err := s.insertUser(ctx, tx, user); err != nil {
			return 0, err
		}
		affected++
	}

	for _, user := range updates {
		if err := s.updateUser(ctx, tx, user); err != nil {
			return 0, err
		}
		affected++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit save changes: %w", err)
	}

	return affected, nil
}

func (s *UserStore) insertUser(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	stmt, args, err := s.builder.
		Insert("users").
		Columns(
			"email",
			"password_hash",
			"first_name",
			"last_name",
			"phone",
			"failed_login_attempts",
			"lockout_end",
			"password_reset_token",
			"password_reset_token_expiry",
			"created_at",
			"updated_at",
			"last_login_at",
			"is_active",
			"version",
		).
		Values(
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.Phone,
			user.FailedLoginAttempts,
			user.LockoutEnd,
			user.PasswordResetToken,
			user.PasswordResetTokenExpiry,
			user.CreatedAt,
			user.UpdatedAt,
			user.LastLoginAt,
			user.IsActive,
			user.Version,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if err := tx.QueryRow(ctx, stmt, args...).Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (s *UserStore) updateUser(ctx context.Context, tx pgx.Tx, user domain.User) error {
	stmt, args, err := s.builder.
		Update("users").
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("phone", user.Phone).
		Set("failed_login_attempts", user.FailedLoginAttempts).
		Set("lockout_end", user.LockoutEnd).
		Set("password_reset_token", user.PasswordResetToken).
		Set("password_reset_token_expiry", user.PasswordResetTokenExpiry).
		Set("updated_at", user.UpdatedAt).
		Set("last_login_at", user.LastLoginAt).
		Set("is_active", user.IsActive).
		Set("version", user.Version+1).
		Where(squirrel.Eq{"id": user.ID, "version": user.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	ct, err := tx.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	// The row was loaded moments ago, so zero rows means the version
	// moved underneath us rather than a missing record.
	if ct.RowsAffected() == 0 {
		return repository.ErrVersionConflict
	}

	return nil
}

var _ port.UserStore = (*UserStore)(nil)

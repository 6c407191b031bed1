package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/domain"
	"github.com/CoreDX1/File-Explorer-2/internal/core/fault"
	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/logger"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/security"
)

const msgUserNotFound = "User not found"

// UpdateProfileInput carries the raw profile-update fields. An empty
// Password means no credential change is requested.
type UpdateProfileInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UserPayload is the profile view returned from reads and updates.
type UserPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// UserService serves profile reads and updates.
type UserService struct {
	users  port.UserStore
	hasher *security.PasswordHasher
	log    *zap.Logger
	now    func() time.Time
}

// NewUserService constructs a UserService instance.
func NewUserService(users port.UserStore, hasher *security.PasswordHasher, log *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		log:    log,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

// FindByID returns the profile view for an account.
func (s *UserService) FindByID(ctx context.Context, id int64) monad.Result[UserPayload] {
	found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return monad.Fail[UserPayload](fault.Storage("lookup user by id", err))
	}
	if found.IsNone() {
		return monad.Fail[UserPayload](fault.NotFound(msgUserNotFound))
	}
	return monad.Ok(toUserPayload(found.MustGet()))
}

// UpdateUserProfile applies the edit: all fields are validated together,
// the password only when one was supplied. Changing the email to one that
// another account holds is a conflict.
func (s *UserService) UpdateUserProfile(ctx context.Context, id int64, input UpdateProfileInput) monad.Result[UserPayload] {
	if failures := domain.CollectFailures(
		domain.ValidateEmail(input.Email),
		domain.ValidatePasswordIfProvided(input.Password),
		domain.ValidateFirstName(input.FirstName),
		domain.ValidateLastName(input.LastName),
		domain.ValidatePhone(input.Phone),
	); len(failures) > 0 {
		return monad.Fail[UserPayload](fault.ValidationJoin(failures))
	}

	found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return monad.Fail[UserPayload](fault.Storage("lookup user by id", err))
	}
	if found.IsNone() {
		return monad.Fail[UserPayload](fault.NotFound(msgUserNotFound))
	}

	user := found.MustGet()
	email := monad.MapResult(domain.NewEmail(input.Email), domain.Email.String).Value()

	if !strings.EqualFold(email, user.Email) {
		other, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return monad.Fail[UserPayload](fault.Storage("lookup user by email", err))
		}
		if other.IsSome() && other.MustGet().ID != user.ID {
			return monad.Fail[UserPayload](fault.Conflict(msgEmailTaken))
		}
	}

	now := s.now().UTC()
	user.Email = email
	user.FirstName = monad.MapResult(domain.NewFirstName(input.FirstName), domain.FirstName.String).Value()
	user.LastName = monad.MapResult(domain.NewLastName(input.LastName), domain.LastName.String).Value()
	user.Phone = monad.MapResult(domain.NewPhone(input.Phone), domain.Phone.String).Value()
	user.UpdatedAt = now

	if strings.TrimSpace(input.Password) != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return monad.Fail[UserPayload](fault.Storage("hash password", err))
		}
		user.PasswordHash = hash
	}

	s.users.Update(user)
	if _, err := s.users.SaveChanges(ctx); err != nil {
		return monad.Fail[UserPayload](saveFault("update user", err))
	}

	s.log.Info("User profile updated",
		zap.Int64("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
	)

	return monad.Ok(toUserPayload(user))
}

func toUserPayload(user domain.User) UserPayload {
	return UserPayload{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
	}
}

package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/domain"
	"github.com/CoreDX1/File-Explorer-2/internal/core/fault"
	"github.com/CoreDX1/File-Explorer-2/internal/core/monad"
	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/logger"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/security"
)

// RegisterInput carries the raw signup fields before validation.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// RegistrationService creates new accounts.
type RegistrationService struct {
	users    port.UserStore
	hasher   *security.PasswordHasher
	tokens   *security.TokenService
	strength *security.StrengthChecker
	log      *zap.Logger
	now      func() time.Time
}

// NewRegistrationService constructs a RegistrationService instance.
func NewRegistrationService(
	users port.UserStore,
	hasher *security.PasswordHasher,
	tokens *security.TokenService,
	strength *security.StrengthChecker,
	log *zap.Logger,
) *RegistrationService {
	if strength == nil {
		strength = security.NewStrengthChecker(0)
	}
	return &RegistrationService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		strength: strength,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *RegistrationService) WithClock(now func() time.Time) *RegistrationService {
	s.now = now
	return s
}

// RegisterUser validates every field, collecting all failures before
// reporting, then creates the account with a hashed credential. The
// account starts inactive; the issued token lets the client hold on to
// the identity while activation completes.
func (s *RegistrationService) RegisterUser(ctx context.Context, input RegisterInput) monad.Result[LoginPayload] {
	if failures := domain.CollectFailures(
		domain.ValidateEmail(input.Email),
		domain.ValidatePassword(input.Password),
		domain.ValidateFirstName(input.FirstName),
		domain.ValidateLastName(input.LastName),
		domain.ValidatePhone(input.Phone),
	); len(failures) > 0 {
		return monad.Fail[LoginPayload](fault.ValidationJoin(failures))
	}

	if err := s.strength.Check(input.Password, input.Email, input.FirstName, input.LastName); err != nil {
		return monad.Fail[LoginPayload](fault.Validation(err.Error()))
	}

	email := monad.MapResult(domain.NewEmail(input.Email), domain.Email.String).Value()
	firstName := monad.MapResult(domain.NewFirstName(input.FirstName), domain.FirstName.String).Value()
	lastName := monad.MapResult(domain.NewLastName(input.LastName), domain.LastName.String).Value()
	phone := monad.MapResult(domain.NewPhone(input.Phone), domain.Phone.String).Value()

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return monad.Fail[LoginPayload](fault.Storage("lookup user by email", err))
	}
	if existing.IsSome() {
		return monad.Fail[LoginPayload](fault.Conflict(msgEmailTaken))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return monad.Fail[LoginPayload](fault.Storage("hash password", err))
	}

	now := s.now().UTC()
	user := domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     false,
		Version:      1,
	}

	s.users.Insert(&user)
	if _, err := s.users.SaveChanges(ctx); err != nil {
		return monad.Fail[LoginPayload](saveFault("create user", err))
	}

	token, err := s.tokens.Generate(user.ID, user.Email, string(domain.RoleUser))
	if err != nil {
		return monad.Fail[LoginPayload](fault.Storage("issue token", err))
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
	)

	return monad.Ok(LoginPayload{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Token:     token,
	})
}

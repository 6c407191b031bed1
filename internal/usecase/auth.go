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

const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountLocked      = "Account is locked due to multiple failed login attempts. Try again later"
)

// LoginPayload is the successful-authentication response body.
type LoginPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Token     string `json:"token"`
}

// AuthMetrics receives security counter increments. Implementations must
// be safe for concurrent use.
type AuthMetrics interface {
	IncLoginFailure()
	IncLockout()
}

type noopAuthMetrics struct{}

func (noopAuthMetrics) IncLoginFailure() {}
func (noopAuthMetrics) IncLockout()      {}

// AuthService coordinates the credential-verification flow: lockout gate,
// password comparison, failure accounting and token issuance.
type AuthService struct {
	users   port.UserStore
	hasher  *security.PasswordHasher
	tokens  *security.TokenService
	lockout domain.LockoutOptions
	metrics AuthMetrics
	log     *zap.Logger
	now     func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	users port.UserStore,
	hasher *security.PasswordHasher,
	tokens *security.TokenService,
	lockout domain.LockoutOptions,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		lockout: lockout,
		metrics: noopAuthMetrics{},
		log:     log,
		now:     time.Now,
	}
}

// WithMetrics attaches security counters.
func (s *AuthService) WithMetrics(metrics AuthMetrics) *AuthService {
	if metrics != nil {
		s.metrics = metrics
	}
	return s
}

// WithClock overrides the time source. Intended for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// AuthenticateUser verifies credentials against the stored hash and the
// lockout policy. The submitted password is never shape-checked here: a
// guess that violates the registration policy is still a guess, and it
// must consume a lockout attempt like any other mismatch. Order matters
// otherwise too: a locked account is rejected before the password is
// even compared, so probing a locked account leaks nothing about the
// credential.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) monad.Result[LoginPayload] {
	found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return monad.Fail[LoginPayload](fault.Storage("lookup user by email", err))
	}
	if found.IsNone() {
		return monad.Fail[LoginPayload](fault.Unauthorized(msgInvalidCredentials))
	}

	user := found.MustGet()
	now := s.now().UTC()

	if domain.AccountStateAt(now, user.LockoutEnd) == domain.AccountLocked {
		s.log.Warn("Login rejected for locked account",
			zap.String("email", logger.MaskEmail(user.Email)),
		)
		return monad.Fail[LoginPayload](fault.Locked(msgAccountLocked))
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return monad.Fail[LoginPayload](fault.Storage("verify password hash", err))
	}

	if !match {
		return s.recordFailure(ctx, user, now)
	}

	user.RecordLogin(now)
	s.users.Update(user)
	if _, err := s.users.SaveChanges(ctx); err != nil {
		return monad.Fail[LoginPayload](saveFault("record login", err))
	}

	token, err := s.tokens.Generate(user.ID, user.Email, string(domain.RoleUser))
	if err != nil {
		return monad.Fail[LoginPayload](fault.Storage("issue access token", err))
	}

	s.log.Info("User authenticated",
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

func (s *AuthService) recordFailure(ctx context.Context, user domain.User, now time.Time) monad.Result[LoginPayload] {
	if !s.lockout.Applies(user.IsActive) {
		user.FailedLoginAttempts++
		user.UpdatedAt = now

		s.users.Update(user)
		if _, err := s.users.SaveChanges(ctx); err != nil {
			return monad.Fail[LoginPayload](saveFault("record failed login", err))
		}

		s.metrics.IncLoginFailure()
		return monad.Fail[LoginPayload](fault.Unauthorized(msgInvalidCredentials))
	}

	decision := domain.NextLockoutState(user.FailedLoginAttempts, s.lockout, now)

	user.FailedLoginAttempts = decision.FailedAttempts
	user.LockoutEnd = decision.LockoutEnd
	user.UpdatedAt = now

	s.users.Update(user)
	if _, err := s.users.SaveChanges(ctx); err != nil {
		return monad.Fail[LoginPayload](saveFault("record failed login", err))
	}

	s.metrics.IncLoginFailure()

	if decision.Locked {
		s.metrics.IncLockout()
		s.log.Warn("Account locked by failure threshold",
			zap.Int64("user_id", user.ID),
			zap.String("email", logger.MaskEmail(user.Email)),
			zap.Int("failed_attempts", decision.FailedAttempts),
		)
		return monad.Fail[LoginPayload](fault.Locked(decision.Message))
	}

	return monad.Fail[LoginPayload](fault.Unauthorized(decision.Message))
}

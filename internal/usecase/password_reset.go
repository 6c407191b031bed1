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
	msgInvalidResetToken = "Invalid or expired reset token"

	resetTokenBytes   = 32
	mailDeliveryGrace = 10 * time.Second
)

// PasswordResetService issues and redeems time-boxed reset tokens. Only
// the hash of a token is persisted; the opaque value travels to the user
// through the mailer and comes back once.
type PasswordResetService struct {
	users    port.UserStore
	mailer   port.ResetMailer
	hasher   *security.PasswordHasher
	strength *security.StrengthChecker
	tokenTTL time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// NewPasswordResetService constructs a PasswordResetService instance.
func NewPasswordResetService(
	users port.UserStore,
	mailer port.ResetMailer,
	hasher *security.PasswordHasher,
	strength *security.StrengthChecker,
	tokenTTL time.Duration,
	log *zap.Logger,
) *PasswordResetService {
	if strength == nil {
		strength = security.NewStrengthChecker(0)
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &PasswordResetService{
		users:    users,
		mailer:   mailer,
		hasher:   hasher,
		strength: strength,
		tokenTTL: tokenTTL,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *PasswordResetService) WithClock(now func() time.Time) *PasswordResetService {
	s.now = now
	return s
}

// InitiatePasswordReset stores a hashed one-time token and hands the raw
// value to the mailer. Unknown emails succeed silently so the endpoint
// cannot be used to enumerate accounts.
func (s *PasswordResetService) InitiatePasswordReset(ctx context.Context, email string) monad.Result[monad.Unit] {
	if v := domain.ValidateEmail(email); v.IsFailure() {
		return monad.Fail[monad.Unit](v.Err())
	}

	found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return monad.Fail[monad.Unit](fault.Storage("lookup user by email", err))
	}
	if found.IsNone() {
		s.log.Info("Password reset requested for unknown email",
			zap.String("email", logger.MaskEmail(email)),
		)
		return monad.OkUnit()
	}

	token, err := security.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return monad.Fail[monad.Unit](fault.Storage("generate reset token", err))
	}

	user := found.MustGet()
	now := s.now().UTC()
	tokenHash := security.HashToken(token)
	expiry := now.Add(s.tokenTTL)

	user.PasswordResetToken = &tokenHash
	user.PasswordResetTokenExpiry = &expiry
	user.UpdatedAt = now

	s.users.Update(user)
	if _, err := s.users.SaveChanges(ctx); err != nil {
		return monad.Fail[monad.Unit](saveFault("store reset token", err))
	}

	// Delivery is fire-and-forget: the caller's response does not depend
	// on the mail pipeline, and a delivery failure must not reveal
	// whether the account exists.
	go func(email, token string) {
		mailCtx, cancel := context.WithTimeout(context.Background(), mailDeliveryGrace)
		defer cancel()

		if err := s.mailer.SendPasswordResetEmail(mailCtx, email, token); err != nil {
			s.log.Error("Password reset email delivery failed",
				zap.String("email", logger.MaskEmail(email)),
				zap.Error(err),
			)
		}
	}(user.Email, token)

	s.log.Info("Password reset initiated",
		zap.Int64("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
		zap.Time("expires_at", expiry),
	)

	return monad.OkUnit()
}

// ResetPassword redeems a token. Expired, unknown and already-used tokens
// are indistinguishable to the caller. A successful reset clears the
// token and any standing lockout, since the mailbox owner has just proven
// control of the account.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) monad.Result[monad.Unit] {
	if v := domain.ValidatePassword(newPassword); v.IsFailure() {
		return monad.Fail[monad.Unit](v.Err())
	}
	if token == "" {
		return monad.Fail[monad.Unit](fault.Validation(msgInvalidResetToken))
	}

	found, err := s.users.FindByResetToken(ctx, security.HashToken(token))
	if err != nil {
		return monad.Fail[monad.Unit](fault.Storage("lookup user by reset token", err))
	}
	if found.IsNone() {
		return monad.Fail[monad.Unit](fault.Validation(msgInvalidResetToken))
	}

	user := found.MustGet()
	now := s.now().UTC()

	if user.PasswordResetTokenExpiry == nil || !user.PasswordResetTokenExpiry.After(now) {
		return monad.Fail[monad.Unit](fault.Validation(msgInvalidResetToken))
	}

	if err := s.strength.Check(newPassword, user.Email, user.FirstName, user.LastName); err != nil {
		return monad.Fail[monad.Unit](fault.Validation(err.Error()))
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return monad.Fail[monad.Unit](fault.Storage("hash password", err))
	}

	user.PasswordHash = hash
	user.FailedLoginAttempts = 0
	user.LockoutEnd = nil
	user.ClearResetToken(now)

	s.users.Update(user)
	if _, err := s.users.SaveChanges(ctx); err != nil {
		return monad.Fail[monad.Unit](saveFault("reset password", err))
	}

	s.log.Info("Password reset completed",
		zap.Int64("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
	)

	return monad.OkUnit()
}

package kafka

import (
	"context"

	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/logger"
)

// StubMailer logs reset email jobs instead of sending them to Kafka.
// Useful for development environments without a broker.
type StubMailer struct {
	logger *zap.Logger
}

// NewStubMailer constructs a development-friendly reset mailer.
func NewStubMailer(logger *zap.Logger) *StubMailer {
	return &StubMailer{logger: logger}
}

// SendPasswordResetEmail logs the job. The token itself is masked; the
// log line is for tracing delivery, not for recovering the link.
func (m *StubMailer) SendPasswordResetEmail(_ context.Context, email, token string) error {
	masked := "***"
	if len(token) > 8 {
		masked = token[:4] + "***" + token[len(token)-4:]
	}

	m.logger.Info("Stub password reset email",
		zap.String("email", logger.MaskEmail(email)),
		zap.String("token", masked),
	)
	return nil
}

var _ port.ResetMailer = (*StubMailer)(nil)

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/CoreDX1/File-Explorer-2/internal/core/port"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/config"
	"github.com/CoreDX1/File-Explorer-2/internal/infra/logger"
)

const (
	resetEmailEventType = "auth.password.reset_requested"
	schemaVersion       = "1.0"
)

// ResetMailer hands password-reset email jobs to the notification topic.
// The downstream notification service renders and sends the actual email;
// this boundary is the only place the raw reset token travels.
type ResetMailer struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewResetMailer constructs a Kafka-backed reset mailer.
func NewResetMailer(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *ResetMailer {
	return &ResetMailer{producer: producer, appCfg: appCfg, logger: logger}
}

type resetEmailEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   resetEmailPayload `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type resetEmailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// SendPasswordResetEmail enqueues a reset email job.
func (m *ResetMailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	metadata := map[string]string{
		"service":     m.appCfg.Name,
		"environment": m.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := resetEmailEnvelope{
		EventID:   uuid.NewString(),
		EventType: resetEmailEventType,
		Timestamp: time.Now().UTC(),
		Version:   schemaVersion,
		Payload:   resetEmailPayload{Email: email, Token: token},
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal reset email envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: m.producer.TopicName(resetEmailEventType),
		Key:   sarama.StringEncoder(email),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case m.producer.Producer().Input() <- message:
		m.logger.Info("Password reset email queued",
			zap.String("email", logger.MaskEmail(email)),
		)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ port.ResetMailer = (*ResetMailer)(nil)

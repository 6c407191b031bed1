package port

import "context"

// ResetMailer is the outbound email-delivery collaborator. The reset token
// travels only to this boundary, never back to the API caller.
type ResetMailer interface {
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}

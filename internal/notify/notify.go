// Package notify decouples user-facing notifications from the request
// path: services enqueue a job and return, a background worker delivers
// it with retries.
package notify

import "context"

// Kind selects the mail template.
type Kind string

const (
	KindRegistrationConfirmation Kind = "registration-confirmation"
	KindRecoveryPassword         Kind = "recovery-password"
)

// Job is one pending notification.
type Job struct {
	Kind  Kind
	Email string
	Code  string
}

// Sender hands a notification to the delivery transport.
type Sender interface {
	SendRegistrationConfirmation(ctx context.Context, email, code string) error
	SendRecoveryPassword(ctx context.Context, email, code string) error
}

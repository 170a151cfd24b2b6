package service

import "context"

// Mailer is the outbound notification sink. Delivery is best-effort: callers
// fire confirmation mail asynchronously and log failures instead of failing
// the originating request.
type Mailer interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, to, subject, body string) error
}

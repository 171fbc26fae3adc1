package model

import "context"

// Mailer delivers outbound mail. Implementations must honor the context
// deadline for the whole delivery.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

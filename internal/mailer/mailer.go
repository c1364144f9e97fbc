package mailer

import (
	"context"
	"fmt"

	appErrors "bitbucket.org/crgw/booking-notifier/internal/errors"
)

// Message is a plain text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, message Message) error
}

// Unavailable is used when the mail transport could not be configured at
// startup, every send reports the original cause.
type Unavailable struct {
	Cause error
}

func (u Unavailable) Send(ctx context.Context, message Message) error {
	return fmt.Errorf("%w: %v", appErrors.ErrorMailerNotAvailable, u.Cause)
}

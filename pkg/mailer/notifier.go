package mailer

import (
	"context"
	"fmt"
)

// Notifier delivers a single HTML message.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Deliverer sends a message with both text and HTML parts.
type Deliverer interface {
	Deliver(ctx context.Context, to, subject, text, html string) error
}

// SendParts delivers text and html through n when it supports multipart
// messages and falls back to an HTML-only Send otherwise.
func SendParts(ctx context.Context, n Notifier, to, subject, text, html string) error {
	if d, ok := n.(Deliverer); ok {
		return d.Deliver(ctx, to, subject, text, html)
	}
	return n.Send(ctx, to, subject, html)
}

// DeliveryError reports a message that could not be handed to its transport.
type DeliveryError struct {
	Transport string
	To        string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery to %s failed: %v", e.Transport, e.To, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

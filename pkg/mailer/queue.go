package mailer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

// QueueNotifier hands rendered messages to the email worker through RabbitMQ.
type QueueNotifier struct {
	pub helpers.JSONPublisher
}

func NewQueueNotifier(pub helpers.JSONPublisher) *QueueNotifier {
	return &QueueNotifier{pub: pub}
}

var (
	_ Notifier  = (*QueueNotifier)(nil)
	_ Deliverer = (*QueueNotifier)(nil)
)

func (q *QueueNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	return q.Deliver(ctx, to, subject, "", htmlBody)
}

func (q *QueueNotifier) Deliver(ctx context.Context, to, subject, text, html string) error {
	job := EmailJob{
		ID:       uuid.NewString(),
		QueuedAt: time.Now().UTC(),
		To:       to,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	}
	if err := q.pub.PublishJSON(ctx, job); err != nil {
		return &DeliveryError{Transport: "queue", To: to, Err: err}
	}
	return nil
}

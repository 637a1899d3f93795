package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogNotifier writes messages to the logger instead of sending them.
// The body is logged at debug level only.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

var (
	_ Notifier  = (*LogNotifier)(nil)
	_ Deliverer = (*LogNotifier)(nil)
)

func (n *LogNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	return n.Deliver(ctx, to, subject, "", htmlBody)
}

func (n *LogNotifier) Deliver(_ context.Context, to, subject, text, html string) error {
	entry := n.log.WithFields(logrus.Fields{"to": to, "subject": subject})
	entry.Info("email not sent (log transport)")
	entry.WithFields(logrus.Fields{"text": text, "html": html}).Debug("email body")
	return nil
}

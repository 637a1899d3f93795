package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunConfig configures the Mailgun HTTP client.
type MailgunConfig struct {
	Domain  string
	APIKey  string
	Sender  string
	APIBase string // optional, e.g. the EU region endpoint
	Timeout time.Duration
}

// Mailgun sends mail through the Mailgun API.
type Mailgun struct {
	cfg    MailgunConfig
	client *mg.MailgunImpl
}

func NewMailgun(cfg MailgunConfig) (*Mailgun, error) {
	if cfg.Domain == "" || cfg.APIKey == "" || cfg.Sender == "" {
		return nil, errors.New("mailgun domain, api key and sender are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := mg.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.APIBase != "" {
		client.SetAPIBase(cfg.APIBase)
	}
	return &Mailgun{cfg: cfg, client: client}, nil
}

var (
	_ Notifier  = (*Mailgun)(nil)
	_ Deliverer = (*Mailgun)(nil)
)

// Send implements Notifier with an HTML-only body.
func (m *Mailgun) Send(ctx context.Context, to, subject, htmlBody string) error {
	return m.Deliver(ctx, to, subject, "", htmlBody)
}

// Deliver sends text as the plain part and html, when set, as the HTML part.
func (m *Mailgun) Deliver(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.cfg.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return &DeliveryError{Transport: "mailgun", To: to, Err: err}
	}
	return nil
}

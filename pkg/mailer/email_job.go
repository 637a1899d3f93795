package mailer

import "time"

// EmailJob is the queued form of an already rendered email.
type EmailJob struct {
	ID       string    `json:"id,omitempty"`
	QueuedAt time.Time `json:"queued_at,omitempty"`
	To       string    `json:"to"`
	Subject  string    `json:"subject,omitempty"`
	Text     string    `json:"text,omitempty"`
	HTML     string    `json:"html,omitempty"`
}

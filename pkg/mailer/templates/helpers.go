package templates

import "time"

// Option adjusts EmailData before rendering.
type Option func(*EmailData)

// WithExpiresAt prints the link expiry in UTC.
func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		d.ExpiresAtText = t.UTC().Format("02 January 2006, 15:04 MST")
	}
}

func newEmailData(appName, name string, opts []Option) EmailData {
	d := EmailData{Name: name, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerifyEmailData(appName, name, verifyURL string, opts ...Option) EmailData {
	d := newEmailData(appName, name, opts)
	d.VerifyURL = verifyURL
	return d
}

func NewResetPasswordData(appName, name, resetURL string, opts ...Option) EmailData {
	d := newEmailData(appName, name, opts)
	d.ResetURL = resetURL
	return d
}

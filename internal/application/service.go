package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-api/config"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	"github.com/oksasatya/go-auth-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-auth-api/pkg/mailer/templates"
)

// Audit actions.
const (
	ActionSignup         = "signup"
	ActionLoginSuccess   = "login_success"
	ActionLoginFailed    = "login_failed"
	ActionVerifyEmail    = "verify_email"
	ActionResetRequested = "password_reset_requested"
	ActionResetConfirmed = "password_reset_confirmed"
	ActionRefresh        = "token_refresh"
	ActionLogout         = "logout"
)

// ProfileCache stores sanitized profiles. A miss is (nil, nil).
type ProfileCache interface {
	Get(ctx context.Context, accountID string) (*entity.Profile, error)
	Set(ctx context.Context, p *entity.Profile) error
	Invalidate(ctx context.Context, accountID string) error
}

// Links builds the URLs placed in outgoing emails.
type Links interface {
	VerifyEmailLink(token string) string
	ResetPasswordLink(token string) string
}

// Settings are the knobs the workflow reads from configuration.
type Settings struct {
	AppName             string
	VerifyTokenTTL      time.Duration
	ResetTokenTTL       time.Duration
	ConcealUnknownEmail bool
}

// SettingsFromConfig picks the workflow settings out of cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		AppName:             cfg.AppName,
		VerifyTokenTTL:      cfg.VerifyTokenTTL,
		ResetTokenTTL:       cfg.ResetTokenTTL,
		ConcealUnknownEmail: cfg.ForgotPasswordConceal,
	}
}

// Service runs the signup, login, verification and password reset workflows.
type Service struct {
	Accounts repo.AccountRepository
	JWT      *helpers.JWTManager
	Notifier mailer.Notifier
	Links    Links
	Settings Settings
	Logger   *logrus.Logger

	Audit    repo.AuditRepository
	Profiles ProfileCache

	now func() time.Time
}

type Option func(*Service)

func WithAudit(a repo.AuditRepository) Option { return func(s *Service) { s.Audit = a } }

func WithProfileCache(c ProfileCache) Option { return func(s *Service) { s.Profiles = c } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(accounts repo.AccountRepository, jwt *helpers.JWTManager, notifier mailer.Notifier, links Links, settings Settings, logger *logrus.Logger, opts ...Option) *Service {
	if settings.VerifyTokenTTL <= 0 {
		settings.VerifyTokenTTL = time.Hour
	}
	if settings.ResetTokenTTL <= 0 {
		settings.ResetTokenTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	s := &Service{
		Accounts: accounts,
		JWT:      jwt,
		Notifier: notifier,
		Links:    links,
		Settings: settings,
		Logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenPair is the access/refresh pair issued on login and refresh.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type requestMetaKey struct{}

// RequestMeta describes the caller for audit records.
type RequestMeta struct {
	IP        string
	UserAgent string
}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

// RequestMetaFrom returns the metadata attached by WithRequestMeta, if any.
func RequestMetaFrom(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m
}

// audit records an event without failing the caller.
func (s *Service) audit(ctx context.Context, action, accountID, email string, meta map[string]any) {
	if s.Audit == nil {
		return
	}
	rm := RequestMetaFrom(ctx)
	ev := repo.AuditEvent{
		AccountID: accountID,
		Email:     email,
		Action:    action,
		IP:        rm.IP,
		UserAgent: rm.UserAgent,
		Metadata:  meta,
		At:        s.now().UTC(),
	}
	if err := s.Audit.Record(ctx, ev); err != nil {
		helpers.LogError(s.Logger, "audit record failed", err, logrus.Fields{"action": action, "account_id": accountID})
	}
}

func (s *Service) invalidateProfile(ctx context.Context, accountID string) {
	if s.Profiles == nil {
		return
	}
	if err := s.Profiles.Invalidate(ctx, accountID); err != nil {
		helpers.LogError(s.Logger, "profile cache invalidate failed", err, logrus.Fields{"account_id": accountID})
	}
}

// sendTemplate renders the named email and hands both parts to the notifier.
func (s *Service) sendTemplate(ctx context.Context, to, name string, data mailtpl.EmailData) error {
	subject, text, html, err := mailtpl.Render(name, data)
	if err != nil {
		return err
	}
	return mailer.SendParts(ctx, s.Notifier, to, subject, text, html)
}

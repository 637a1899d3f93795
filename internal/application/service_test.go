package application

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-api/config"
	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-auth-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

const strongPassword = "Password1!"

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type message struct {
	to, subject, text, html string
}

type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	sent []message
}

func (n *fakeNotifier) Send(ctx context.Context, to, subject, html string) error {
	return n.Deliver(ctx, to, subject, "", html)
}

func (n *fakeNotifier) Deliver(_ context.Context, to, subject, text, html string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, message{to, subject, text, html})
	return nil
}

func (n *fakeNotifier) last(t *testing.T) message {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent, "no email sent")
	return n.sent[len(n.sent)-1]
}

type fakeAudit struct {
	mu     sync.Mutex
	err    error
	events []repo.AuditEvent
}

func (a *fakeAudit) Record(_ context.Context, ev repo.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	return a.err
}

func (a *fakeAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type fakeCache struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	getErr   error
}

func newFakeCache() *fakeCache { return &fakeCache{profiles: map[string]*entity.Profile{}} }

func (c *fakeCache) Get(_ context.Context, id string) (*entity.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.profiles[id], nil
}

func (c *fakeCache) Set(_ context.Context, p *entity.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[p.ID] = p
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.profiles, id)
	return nil
}

// failingRepo wraps a repository and fails selected calls.
type failingRepo struct {
	repo.AccountRepository
	findByIDErr error
	saveErr     error
}

func (r *failingRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if r.findByIDErr != nil {
		return nil, r.findByIDErr
	}
	return r.AccountRepository.FindByID(ctx, id)
}

func (r *failingRepo) Save(ctx context.Context, a *entity.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.AccountRepository.Save(ctx, a)
}

type harness struct {
	svc      *Service
	repo     *memory.AccountRepository
	notifier *fakeNotifier
	audit    *fakeAudit
	clock    *fakeClock
}

func newHarness(t *testing.T, opts ...func(*Settings)) *harness {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	accounts := memory.NewAccountRepository()
	notifier := &fakeNotifier{}
	audit := &fakeAudit{}
	cfg := &config.Config{AppName: "Auth", AppURL: "http://localhost:8080"}
	settings := Settings{AppName: "Auth", VerifyTokenTTL: time.Hour, ResetTokenTTL: 15 * time.Minute}
	for _, o := range opts {
		o(&settings)
	}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour, helpers.WithClock(clock.Now))
	svc := NewService(accounts, jwt, notifier, cfg, settings, helpers.NewDiscardLogger(),
		WithAudit(audit), WithClock(clock.Now))
	return &harness{svc: svc, repo: accounts, notifier: notifier, audit: audit, clock: clock}
}

var (
	verifyLinkPattern = regexp.MustCompile(`http://localhost:8080/api/auth/verify-email/([A-Za-z0-9_.-]+)`)
	resetLinkPattern  = regexp.MustCompile(`http://localhost:8080/reset-password/([A-Za-z0-9_.-]+)`)
)

func tokenFrom(t *testing.T, re *regexp.Regexp, html string) string {
	t.Helper()
	m := re.FindStringSubmatch(html)
	require.Len(t, m, 2, "link not found in %q", html)
	return m[1]
}

func (h *harness) signup(t *testing.T, name, email string) *entity.Profile {
	t.Helper()
	p, err := h.svc.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: strongPassword})
	require.NoError(t, err)
	return p
}

var errBoom = errors.New("boom")

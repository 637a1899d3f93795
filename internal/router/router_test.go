package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-api/config"
	"github.com/oksasatya/go-auth-api/internal/container"
	"github.com/oksasatya/go-auth-api/internal/interface/middleware"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	"github.com/oksasatya/go-auth-api/pkg/validation"
)

type outbox struct {
	mu   sync.Mutex
	html []string
}

func (o *outbox) Send(_ context.Context, _, _, html string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.html = append(o.html, html)
	return nil
}

func (o *outbox) last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.html[len(o.html)-1]
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	RequestID  string          `json:"request_id"`
	Error      *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newServer(t *testing.T) (*gin.Engine, *outbox) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Init())

	cfg := &config.Config{
		AppName:          "auth",
		Env:              "test",
		AppURL:           "http://localhost:8080",
		StoreDriver:      "memory",
		MailTransport:    "log",
		MailSendEnabled:  true,
		JWTAccessSecret:  "access",
		JWTRefreshSecret: "refresh",
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       168 * time.Hour,
		VerifyTokenTTL:   time.Hour,
		ResetTokenTTL:    15 * time.Minute,
		CookieDomain:     "localhost",
	}
	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	box := &outbox{}
	c.Notifier = box

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.Recovery(c.Logger), middleware.RealIP())
	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r, box
}

func do(t *testing.T, r http.Handler, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

var (
	verifyRe = regexp.MustCompile(`/api/auth/verify-email/([A-Za-z0-9_.-]+)`)
	resetRe  = regexp.MustCompile(`/reset-password/([A-Za-z0-9_.-]+)`)
)

func TestAuthEndpointsEndToEnd(t *testing.T) {
	r, box := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Alice", "email": "alice@gmail.com", "password": "Password1!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, 201, env.StatusCode)
	assert.NotEmpty(t, env.RequestID)
	assert.NotContains(t, string(env.Data), "password")

	w, env = do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Alice", "email": "ALICE@gmail.com", "password": "Other123!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "EMAIL_IN_USE", env.Error.Code)

	tok := verifyRe.FindStringSubmatch(box.last())
	require.Len(t, tok, 2)
	w, _ = do(t, r, http.MethodGet, "/api/auth/verify-email/"+tok[1], nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/auth/verify-email/"+tok[1], nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "alice@gmail.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	reset := resetRe.FindStringSubmatch(box.last())
	require.Len(t, reset, 2)

	w, env = do(t, r, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"token": reset[1], "password": "NewPass1!", "confirm_password": "Mismatch1!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PASSWORD_MISMATCH", env.Error.Code)

	w, _ = do(t, r, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"token": reset[1], "password": "NewPass1!", "confirm_password": "NewPass1!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "alice@gmail.com", "password": "Password1!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "alice@gmail.com", "password": "NewPass1!"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		User struct {
			Email      string `json:"email"`
			IsVerified bool   `json:"isVerified"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.True(t, login.User.IsVerified)
	assert.NotEmpty(t, login.AccessToken)

	access := cookie(w, helpers.AccessTokenCookie)
	refresh := cookie(w, helpers.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)

	w, env = do(t, r, http.MethodGet, "/api/auth/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "alice@gmail.com")

	w, _ = do(t, r, http.MethodPost, "/api/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusOK, w.Code)
	newAccess := cookie(w, helpers.AccessTokenCookie)
	require.NotNil(t, newAccess)

	w, _ = do(t, r, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refresh.Value})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/auth/logout", nil, newAccess)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookie(w, helpers.AccessTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAuthEndpointErrors(t *testing.T) {
	r, _ := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{"name": "Bob", "email": "bob@yahoo.com", "password": "Password1!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only Gmail addresses are allowed", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@gmail.com", "password": "Password1!"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)

	w, _ = do(t, r, http.MethodGet, "/api/auth/verify-email/not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var bad envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bad))
	assert.Equal(t, "INVALID_PAYLOAD", bad.Error.Code)
	assert.Equal(t, "invalid json", bad.Error.Details["payload"])
}

func TestHealth(t *testing.T) {
	r, _ := newServer(t)
	w, env := do(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","services":{}}`, string(env.Data))
}

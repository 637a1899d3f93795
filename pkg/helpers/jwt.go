package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ActionPurpose tags single-purpose action tokens so a verification link can
// never be replayed as a password reset and vice versa.
type ActionPurpose string

const (
	PurposeVerifyEmail   ActionPurpose = "verify_email"
	PurposeResetPassword ActionPurpose = "reset_password"
)

// JWTManager handles generation and validation of JWT tokens
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	ActionSecret  []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	now func() time.Time
}

type JWTOption func(*JWTManager)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) JWTOption {
	return func(m *JWTManager) { m.now = now }
}

// WithActionSecret signs action tokens with their own key instead of the refresh secret.
func WithActionSecret(secret string) JWTOption {
	return func(m *JWTManager) {
		if secret != "" {
			m.ActionSecret = []byte(secret)
		}
	}
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...JWTOption) *JWTManager {
	m := &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		ActionSecret:  []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TokenType separates access from refresh tokens.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type Claims struct {
	UserID string    `json:"uid"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// ActionClaims carry an email for verification and reset links.
type ActionClaims struct {
	Purpose ActionPurpose `json:"purpose"`
	Email   string        `json:"email"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateAccessToken(userID string) (string, time.Time, error) {
	return m.generateUserToken(userID, TokenAccess, m.AccessSecret, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(userID string) (string, time.Time, error) {
	return m.generateUserToken(userID, TokenRefresh, m.RefreshSecret, m.RefreshTTL)
}

func (m *JWTManager) generateUserToken(userID string, typ TokenType, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// GenerateActionToken issues a token for purpose bound to email, valid for ttl.
func (m *JWTManager) GenerateActionToken(purpose ActionPurpose, email string, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)
	claims := &ActionClaims{
		Purpose: purpose,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.ActionSecret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return m.parseUserToken(tokenStr, TokenAccess, m.AccessSecret)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return m.parseUserToken(tokenStr, TokenRefresh, m.RefreshSecret)
}

// parseUserToken rejects tokens of another type, including action tokens
// signed with the same secret.
func (m *JWTManager) parseUserToken(tokenStr string, typ TokenType, secret []byte) (*Claims, error) {
	claims := &Claims{}
	if err := m.parse(tokenStr, claims, secret); err != nil {
		return nil, err
	}
	if claims.Type != typ || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseActionToken verifies an action token and requires it to carry purpose.
func (m *JWTManager) ParseActionToken(tokenStr string, purpose ActionPurpose) (*ActionClaims, error) {
	claims := &ActionClaims{}
	if err := m.parse(tokenStr, claims, m.ActionSecret); err != nil {
		return nil, err
	}
	if claims.Purpose != purpose || claims.Email == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !tkn.Valid {
		return ErrTokenInvalid
	}
	return nil
}

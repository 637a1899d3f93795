package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	"github.com/oksasatya/go-auth-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxProfileKey   = "profile"
)

// Authenticator resolves an access token to the caller's profile.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.Profile, error)
}

// Auth validates the access token from the accessToken cookie or an
// Authorization: Bearer header. On success it sets userID, userEmail and
// profile in the Gin context.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := auth.Authenticate(c.Request.Context(), AccessToken(c))
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(CtxUserIDKey, p.ID)
		c.Set(CtxUserEmailKey, p.Email)
		c.Set(CtxProfileKey, p)
		c.Next()
	}
}

// AccessToken returns the token from the cookie, falling back to the bearer header.
func AccessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessTokenCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// ProfileFrom returns the profile stored by Auth.
func ProfileFrom(c *gin.Context) (*entity.Profile, bool) {
	v, ok := c.Get(CtxProfileKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*entity.Profile)
	return p, ok
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-auth-api/internal/interface/http"
	"github.com/oksasatya/go-auth-api/internal/interface/middleware"
)

// UserModule wires the session endpoints.
// Public: POST /api/auth/refresh
// Protected: GET /api/auth/me, POST /api/auth/logout
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    middleware.Authenticator
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authenticator) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/refresh", m.Handler.Refresh)

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(m.Auth))
	{
		protected.GET("/me", m.Handler.Me)
		protected.POST("/logout", m.Handler.Logout)
	}
}

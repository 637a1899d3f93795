package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-auth-api/internal/interface/http"
)

// AuthModule serves the public account endpoints under /auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signup", m.Handler.Signup)
	auth.POST("/login", m.Handler.Login)
	auth.GET("/verify-email/:token", m.Handler.VerifyEmail)
	auth.POST("/forgot-password", m.Handler.ForgotPassword)
	auth.POST("/reset-password", m.Handler.ResetPassword)
}

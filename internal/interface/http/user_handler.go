package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-api/internal/application"
	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/interface/middleware"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
	"github.com/oksasatya/go-auth-api/pkg/response"
	"github.com/oksasatya/go-auth-api/pkg/validation"
)

// UserHandler serves the signed-in session: profile, refresh and logout.
type UserHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *UserHandler) Me(c *gin.Context) {
	p, ok := middleware.ProfileFrom(c)
	if !ok {
		response.Fail(c, autherr.New(autherr.Unauthenticated, "Unauthorized request"))
		return
	}
	response.Success(c, http.StatusOK, p, "Current user fetched successfully")
}

// Refresh reads the refresh token from its cookie or, failing that, the body.
func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshTokenCookie)
	if err != nil || refresh == "" {
		var req refreshRequest
		if c.Request.ContentLength != 0 {
			if err := validation.BindJSON(c, &req); err != nil {
				response.Fail(c, err)
				return
			}
		}
		refresh = req.RefreshToken
	}

	res, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Fail(c, err)
		return
	}
	pair := res.Tokens
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, loginResponse{
		User:         res.Account,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey)); err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, messageResponse{Message: "User logged out"}, "User logged out")
}

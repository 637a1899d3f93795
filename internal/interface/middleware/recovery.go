package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/pkg/response"
)

// Recovery turns panics into a 500 envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(CtxRequestIDKey),
		}).Error("panic recovered")
		response.Error(c, http.StatusInternalServerError, "Internal server error", &response.ErrorBody{Code: string(autherr.Internal)})
		c.Abort()
	})
}

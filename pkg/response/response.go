package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/pkg/validation"
)

const msgInternal = "Internal server error"

type APIResponse[T any] struct {
	StatusCode int       `json:"statusCode"`
	Data       T         `json:"data"`
	Message    string    `json:"message"`
	Success    bool      `json:"success"`
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Error      any       `json:"error,omitempty"`
}

// ErrorBody is the error member of a failed response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
		RequestID:  ctx.GetString("request_id"),
		Timestamp:  time.Now().UTC(),
	})
}

func Error(ctx *gin.Context, status int, message string, body *ErrorBody) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[any]{
		StatusCode: status,
		Message:    message,
		Success:    false,
		RequestID:  ctx.GetString("request_id"),
		Timestamp:  time.Now().UTC(),
	}
	if body != nil {
		resp.Error = body
	}
	ctx.JSON(status, resp)
}

// Fail writes err as an error envelope. Untyped errors become a 500 and
// internal causes never reach the client.
func Fail(ctx *gin.Context, err error) {
	ae, ok := autherr.As(err)
	if !ok {
		Error(ctx, http.StatusInternalServerError, msgInternal, &ErrorBody{Code: string(autherr.Internal)})
		return
	}
	body := &ErrorBody{Code: string(ae.Kind)}
	msg := ae.Message
	switch ae.Kind {
	case autherr.Internal:
		if msg == "" {
			msg = msgInternal
		}
	case autherr.InvalidPayload:
		if ae.Cause != nil {
			body.Details = validation.ToDetails(ae.Cause)
		}
	}
	Error(ctx, ae.Status(), msg, body)
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, err error) {
	Fail(ctx, err)
	ctx.Abort()
}

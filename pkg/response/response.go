package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
)

// APIResponse is the JSON envelope for every endpoint.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// Success writes a success envelope.
func Success[T any](c *gin.Context, status int, data T, message string, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes a failure envelope with an explicit status.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, envelope(c, status, message, details))
}

// AbortError writes a failure envelope and stops the handler chain.
// Middleware uses this to short-circuit rejected requests.
func AbortError(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, envelope(c, status, message, details))
}

// Failure maps an application error to its HTTP status. This switch is the
// only place error kinds meet status codes. Infrastructure and corruption
// kinds collapse to a generic 500 with no internal detail in the body.
func Failure(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	switch appErr.Kind {
	case apperr.KindConflict:
		Error(c, http.StatusConflict, appErr.Message, nil)
	case apperr.KindNotFound:
		Error(c, http.StatusNotFound, appErr.Message, nil)
	case apperr.KindInvalidCredentials, apperr.KindUnauthenticated:
		Error(c, http.StatusUnauthorized, appErr.Message, nil)
	default: // KindMalformed, KindUnavailable, KindInternal
		Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func envelope(c *gin.Context, status int, message string, details any) APIResponse[any] {
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	}
}

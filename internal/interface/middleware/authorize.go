package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/domain/repository"
	"github.com/subtrackhq/subtrack/pkg/helpers"
	"github.com/subtrackhq/subtrack/pkg/response"
)

// Context keys set by Authorize on success.
const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

const bearerPrefix = "Bearer "

// Authorize gates protected routes. It extracts the bearer token from the
// Authorization header, verifies it, resolves the subject to an account, and
// attaches the account to the request context. Every failure mode produces
// the same 401 rejection; the verification reason travels in the error field
// for observability but signing-key material never does. A missing header or
// a non-Bearer scheme is rejected before any token processing.
func Authorize(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Debug("bearer token rejected")
			}
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}

		// The token is self-verifying, but the subject must still exist:
		// an account deleted after issuance invalidates its tokens here.
		u, err := repo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("user_id", claims.UserID).Debug("token subject not resolved")
			}
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

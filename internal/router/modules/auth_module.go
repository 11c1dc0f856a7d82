package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/subtrackhq/subtrack/internal/interface/http"
)

// AuthModule registers the public credential endpoints:
// POST /api/auth/sign-up, POST /api/auth/sign-in, POST /api/auth/sign-out.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/sign-up", m.Handler.SignUp)
	rg.POST("/auth/sign-in", m.Handler.SignIn)
	rg.POST("/auth/sign-out", m.Handler.SignOut)
}

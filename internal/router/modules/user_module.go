package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/container"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
	handlers "github.com/subtrackhq/subtrack/internal/interface/http"
	"github.com/subtrackhq/subtrack/internal/interface/middleware"
)

// UserModule registers the bearer-guarded profile endpoints:
// GET /api/users/me, PUT /api/users/me/avatar.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/users")
	grp.Use(middleware.Authorize(m.Users, container.GetJWT(), container.GetLogger()))
	{
		grp.GET("/me", m.Handler.Me)
		grp.PUT("/me/avatar", m.Handler.UploadAvatar)
	}
}

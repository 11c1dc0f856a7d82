package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/container"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
	handlers "github.com/subtrackhq/subtrack/internal/interface/http"
	"github.com/subtrackhq/subtrack/internal/interface/middleware"
)

// SubscriptionModule registers the bearer-guarded subscription endpoints.
type SubscriptionModule struct {
	Handler *handlers.SubscriptionHandler
	Users   repository.UserRepository
}

func NewSubscriptionModule(h *handlers.SubscriptionHandler, users repository.UserRepository) *SubscriptionModule {
	return &SubscriptionModule{Handler: h, Users: users}
}

func (m *SubscriptionModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/subscriptions")
	grp.Use(middleware.Authorize(m.Users, container.GetJWT(), container.GetLogger()))
	{
		grp.POST("", m.Handler.Create)
		grp.GET("", m.Handler.List)
		grp.GET("/search", m.Handler.Search)
		grp.GET("/:id", m.Handler.Get)
		grp.PUT("/:id/cancel", m.Handler.Cancel)
	}
}

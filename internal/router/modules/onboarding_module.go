package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	handlers "github.com/oksasatya/creatorlink/internal/interface/http"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
)

type OnboardingModule struct {
	Handler *handlers.OnboardingHandler
	Redis   *redis.Client
}

func NewOnboardingModule(h *handlers.OnboardingHandler, rdb *redis.Client) *OnboardingModule {
	return &OnboardingModule{Handler: h, Redis: rdb}
}

func (m *OnboardingModule) Register(rg *gin.RouterGroup) {
	ob := rg.Group("/onboarding")
	ob.Use(
		middleware.RequireSession(),
		middleware.RequireRole(entity.RoleCreator, entity.RoleBrand, entity.RoleAgency),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		ob.GET("", m.Handler.Get)
		ob.PUT("", m.Handler.Save)
		ob.GET("/status", m.Handler.Status)
		ob.POST("/next", m.Handler.Next)
		ob.POST("/skip", m.Handler.Skip)
		ob.POST("/back", m.Handler.Back)
		ob.POST("/complete", m.Handler.Complete)
		ob.POST("/avatar", middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByUserID(), nil), m.Handler.UploadAvatar)
	}
}

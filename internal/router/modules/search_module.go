package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	handlers "github.com/oksasatya/creatorlink/internal/interface/http"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
)

type SearchModule struct {
	Handler *handlers.SearchHandler
	Redis   *redis.Client
}

func NewSearchModule(h *handlers.SearchHandler, rdb *redis.Client) *SearchModule {
	return &SearchModule{Handler: h, Redis: rdb}
}

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rg.GET("/creators/search",
		middleware.RequireSession(),
		middleware.RequireRole(entity.RoleBrand, entity.RoleAgency, entity.RoleAdmin),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.Creators,
	)
}

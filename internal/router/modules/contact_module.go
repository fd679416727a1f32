package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/creatorlink/internal/interface/http"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	Redis   *redis.Client
}

func NewContactModule(h *handlers.ContactHandler, rdb *redis.Client) *ContactModule {
	return &ContactModule{Handler: h, Redis: rdb}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rg.POST("/contact", middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()), m.Handler.Send)
}

package modules

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/creatorlink/internal/guard"
	handlers "github.com/oksasatya/creatorlink/internal/interface/http"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
	"github.com/oksasatya/creatorlink/pkg/response"
)

// PageModule serves every routed page through the guard. Pages are matched
// by the guard's table, so the engine's NoRoute handler carries them.
type PageModule struct {
	Engine  *gin.Engine
	Handler *handlers.PageHandler
	Guard   *guard.Guard
	Session gin.HandlerFunc
}

func NewPageModule(engine *gin.Engine, h *handlers.PageHandler, g *guard.Guard, sessionMW gin.HandlerFunc) *PageModule {
	return &PageModule{Engine: engine, Handler: h, Guard: g, Session: sessionMW}
}

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rg.GET("/navigate", m.Handler.Navigate)
	rg.GET("/routes", m.Handler.Routes)

	m.Engine.NoRoute(m.Session, func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			response.Abort(c, response.Error[any](c, http.StatusNotFound, "endpoint not found", nil))
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.Abort(c, response.Error[any](c, http.StatusMethodNotAllowed, "pages are read-only", nil))
			return
		}
		c.Next()
	}, middleware.PageGuard(m.Guard), m.Handler.Render)
}

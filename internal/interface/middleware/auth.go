package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/response"
)

// RequireSession rejects API calls from clients without an authenticated session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := session.From(c)
		if !ok || !st.Snapshot().IsAuthenticated {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "not signed in", nil))
			return
		}
		c.Next()
	}
}

// RequireRole allows only the listed roles. It expects RequireSession before it.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := session.From(c)
		if !ok {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "not signed in", nil))
			return
		}
		snap := st.Snapshot()
		if snap.User != nil {
			for _, r := range roles {
				if snap.User.Role == r {
					c.Next()
					return
				}
			}
		}
		response.Abort(c, response.Error[any](c, http.StatusForbidden, "role not permitted", nil))
	}
}

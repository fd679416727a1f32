package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/creatorlink/internal/guard"
	"github.com/oksasatya/creatorlink/internal/session"
)

const decisionKey = "guard.decision"

// PageGuard runs the route guard for page requests and answers its redirects
// with 302. Rendered decisions are left on the context for the page handler.
func PageGuard(g *guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap session.Session
		if st, ok := session.From(c); ok {
			snap = st.Snapshot()
		}
		d := g.Evaluate(c.Request.Context(), c.Request.URL.RequestURI(), snap)
		if !d.Render() {
			c.Redirect(http.StatusFound, d.Redirect)
			c.Abort()
			return
		}
		c.Set(decisionKey, d)
		c.Next()
	}
}

// GuardDecision returns the decision stored by PageGuard.
func GuardDecision(c *gin.Context) (guard.Decision, bool) {
	v, ok := c.Get(decisionKey)
	if !ok {
		return guard.Decision{}, false
	}
	d, ok := v.(guard.Decision)
	return d, ok
}

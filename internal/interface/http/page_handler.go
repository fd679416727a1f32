package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/creatorlink/internal/guard"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/response"
)

const viewLoading = "loading"

// PageHandler serves view descriptors for routed pages. The browser shell
// renders the named view; the guard has already run.
type PageHandler struct {
	Guard *guard.Guard
}

func NewPageHandler(g *guard.Guard) *PageHandler {
	return &PageHandler{Guard: g}
}

type pageView struct {
	Path   string       `json:"path"`
	View   string       `json:"view"`
	Reason guard.Reason `json:"reason"`
	User   any          `json:"user,omitempty"`
	Route  guard.Route  `json:"route"`
}

func viewFor(d guard.Decision, path string, sess session.Session) pageView {
	v := pageView{Path: path, View: d.Route.View, Reason: d.Reason, Route: d.Route}
	if d.Reason == guard.ReasonLoading {
		v.View = viewLoading
	}
	if sess.User != nil {
		v.User = sess.User
	}
	return v
}

// Render answers a page request that PageGuard let through.
func (h *PageHandler) Render(c *gin.Context) {
	d, ok := middleware.GuardDecision(c)
	if !ok {
		d = h.evaluate(c, c.Request.URL.RequestURI())
	}
	status := http.StatusOK
	if d.Route.View == guard.ViewNotFound {
		status = http.StatusNotFound
	}
	response.JSON(c, response.Success(c, status, viewFor(d, c.Request.URL.Path, snapshot(c)), "page", nil))
}

// Navigate evaluates ?path= without following it, for client-side routing.
func (h *PageHandler) Navigate(c *gin.Context) {
	target := c.Query("path")
	if target == "" {
		target = guard.PathHome
	}
	d := h.evaluate(c, target)
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"decision": d,
		"render":   d.Render(),
		"view":     viewFor(d, target, snapshot(c)).View,
	}, "navigation", nil))
}

// Routes lists the page table.
func (h *PageHandler) Routes(c *gin.Context) {
	response.JSON(c, response.Success(c, http.StatusOK, h.Guard.Table().Routes(), "routes", gin.H{"dashboards": guard.Dashboards}))
}

func (h *PageHandler) evaluate(c *gin.Context, target string) guard.Decision {
	return h.Guard.Evaluate(c.Request.Context(), target, snapshot(c))
}

func snapshot(c *gin.Context) session.Session {
	if st, ok := session.From(c); ok {
		return st.Snapshot()
	}
	return session.Session{}
}

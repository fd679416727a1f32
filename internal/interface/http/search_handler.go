package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/creatorlink/internal/application"
	"github.com/oksasatya/creatorlink/pkg/response"
)

// SearchHandler lets brands, agencies and admins discover creators.
type SearchHandler struct {
	Index  *app.ProfileIndex
	Logger *logrus.Logger
}

func NewSearchHandler(index *app.ProfileIndex, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Index: index, Logger: logger}
}

type searchRequest struct {
	Q            string `form:"q" binding:"max=200"`
	Category     string `form:"category" binding:"max=60"`
	Platform     string `form:"platform" binding:"max=40"`
	MinFollowers int    `form:"minFollowers" binding:"gte=0"`
	Size         int    `form:"size" binding:"gte=0,lte=50"`
}

func (h *SearchHandler) Creators(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Index.Search(c.Request.Context(), app.SearchQuery{
		Text:         req.Q,
		Category:     req.Category,
		Platform:     req.Platform,
		MinFollowers: req.MinFollowers,
		Size:         req.Size,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("creator search failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusBadGateway, "search unavailable", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, out, "creators", gin.H{"count": len(out)}))
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/creatorlink/config"
	app "github.com/oksasatya/creatorlink/internal/application"
	"github.com/oksasatya/creatorlink/pkg/mailer"
	mailtpl "github.com/oksasatya/creatorlink/pkg/mailer/templates"
	"github.com/oksasatya/creatorlink/pkg/response"
)

// ContactHandler forwards contact-page enquiries to the sales inbox.
type ContactHandler struct {
	Pub    app.EmailPublisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewContactHandler(pub app.EmailPublisher, logger *logrus.Logger, cfg *config.Config) *ContactHandler {
	return &ContactHandler{Pub: pub, Logger: logger, Cfg: cfg}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Company string `json:"company" binding:"max=120"`
	Topic   string `json:"topic" binding:"required,oneof=creator brand agency partnership press other"`
	Message string `json:"message" binding:"required,min=10,max=4000"`
}

func (h *ContactHandler) Send(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		response.JSON(c, response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": false, "disabled": true}, "email sending disabled", nil))
		return
	}

	job := mailer.EmailJob{
		To:       h.Cfg.SalesInbox,
		Template: mailtpl.ContactInquiry,
		Data: mailtpl.NewContactInquiryData(h.Cfg, strings.TrimSpace(req.Name), req.Email, req.Company, req.Topic,
			strings.TrimSpace(req.Message)),
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("failed to publish contact enquiry")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "failed to enqueue", nil))
		return
	}
	response.JSON(c, response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": true}, "thanks, we will be in touch", nil))
}

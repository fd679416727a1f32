package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/creatorlink/internal/application"
	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/guard"
	"github.com/oksasatya/creatorlink/pkg/response"
)

const maxAvatarBytes = 5 << 20

type OnboardingHandler struct {
	Svc    *app.OnboardingService
	Logger *logrus.Logger
}

func NewOnboardingHandler(svc *app.OnboardingService, logger *logrus.Logger) *OnboardingHandler {
	return &OnboardingHandler{Svc: svc, Logger: logger}
}

type progressView struct {
	Email      string         `json:"email"`
	Step       entity.Step    `json:"step"`
	StepName   string         `json:"stepName"`
	TotalSteps int            `json:"totalSteps"`
	IsLastStep bool           `json:"isLastStep"`
	CanAdvance bool           `json:"canAdvance"`
	Answers    entity.Answers `json:"answers"`
}

func viewOf(p *entity.Progress) progressView {
	return progressView{
		Email:      p.Email,
		Step:       p.Step,
		StepName:   p.Step.String(),
		TotalSteps: entity.StepCount,
		IsLastStep: p.Step == entity.LastStep,
		CanAdvance: p.Answers.StepComplete(p.Step),
		Answers:    p.Answers,
	}
}

// user returns the signed-in user; progress is never addressed by request input.
func (h *OnboardingHandler) user(c *gin.Context) (*entity.User, bool) {
	st, ok := storeOf(c)
	if !ok {
		return nil, false
	}
	u := st.Snapshot().User
	if u == nil {
		writeError(c, h.Logger, app.ErrNoSession)
		return nil, false
	}
	return u, true
}

func (h *OnboardingHandler) reply(c *gin.Context, p *entity.Progress, err error, msg string) {
	if errors.Is(err, app.ErrStepIncomplete) && p != nil {
		response.JSON(c, response.Error[any](c, http.StatusUnprocessableEntity, err.Error(), viewOf(p)))
		return
	}
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, viewOf(p), msg, nil))
}

func (h *OnboardingHandler) Get(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	p, err := h.Svc.Load(c.Request.Context(), u.Email)
	h.reply(c, p, err, "onboarding progress")
}

func (h *OnboardingHandler) Save(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	var answers entity.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Svc.Save(c.Request.Context(), u.Email, answers)
	h.reply(c, p, err, "answers saved")
}

func (h *OnboardingHandler) Next(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	var answers entity.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Svc.Next(c.Request.Context(), u.Email, answers)
	h.reply(c, p, err, "step completed")
}

func (h *OnboardingHandler) Skip(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	p, err := h.Svc.Skip(c.Request.Context(), u.Email)
	h.reply(c, p, err, "step skipped")
}

func (h *OnboardingHandler) Back(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	p, err := h.Svc.Back(c.Request.Context(), u.Email)
	h.reply(c, p, err, "moved back")
}

func (h *OnboardingHandler) Complete(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	var answers entity.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		badRequest(c, err)
		return
	}
	st, _ := storeOf(c)
	done, err := h.Svc.Complete(c.Request.Context(), st, u.Email, answers)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"user":     done,
		"redirect": guard.DashboardFor(u.Role),
	}, "onboarding completed", nil))
}

// Status exposes both completion sources side by side.
func (h *OnboardingHandler) Status(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	flag, err := h.Svc.Completed(c.Request.Context(), u.Email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"sessionCompleted": u.OnboardingCompleted,
		"flagCompleted":    flag,
	}, "onboarding status", nil))
}

func (h *OnboardingHandler) UploadAvatar(c *gin.Context) {
	u, ok := h.user(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "cannot read avatar", nil))
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), u, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, gin.H{"avatarUrl": url}, "avatar uploaded", nil))
}

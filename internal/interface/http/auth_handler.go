package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/creatorlink/internal/application"
	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/pkg/response"
)

type AuthHandler struct {
	Svc    *app.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *app.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Redirect string `json:"redirect" binding:"omitempty,localpath"`
}

type registerRequest struct {
	Name          string `json:"name" binding:"required,max=120"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,pwd"`
	Role          string `json:"role" binding:"required,signuprole"`
	Company       string `json:"company" binding:"max=120"`
	FollowerCount int    `json:"followerCount" binding:"gte=0"`
	Niche         string `json:"niche" binding:"max=60"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,otp"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// sessionView is what the browser shell sees of the current session.
type sessionView struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	User            *entity.User `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, ok := storeOf(c)
	if !ok {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), st, app.LoginInput{Email: req.Email, Password: req.Password, Redirect: req.Redirect})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, res, "login successful", nil))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          entity.Role(req.Role),
		Company:       req.Company,
		FollowerCount: req.FollowerCount,
		Niche:         req.Niche,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusAccepted, gin.H{
		"email":    u.Email,
		"role":     u.Role,
		"verified": false,
		"next":     "/verify-otp",
	}, "verification code sent", nil))
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, ok := storeOf(c)
	if !ok {
		return
	}
	u, err := h.Svc.VerifyOTP(c.Request.Context(), st, req.Email, req.Code)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, app.LoginResult{User: u, NeedsOnboarding: true, Redirect: "/onboarding"}, "email verified", nil))
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Svc.ResendOTP(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success[any](c, http.StatusAccepted, gin.H{"resent": true}, "verification code sent", nil))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	st, ok := storeOf(c)
	if !ok {
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), st); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success[any](c, http.StatusOK, gin.H{"loggedOut": true}, "logged out", nil))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	st, ok := storeOf(c)
	if !ok {
		return
	}
	token, err := h.Svc.RefreshToken(c.Request.Context(), st)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"token": token}, "token refreshed", nil))
}

// Me reports the current session; signed-out clients get isAuthenticated=false.
func (h *AuthHandler) Me(c *gin.Context) {
	st, ok := storeOf(c)
	if !ok {
		return
	}
	snap := st.Snapshot()
	response.JSON(c, response.Success(c, http.StatusOK, sessionView{
		IsAuthenticated: snap.IsAuthenticated,
		IsLoading:       snap.IsLoading,
		User:            snap.User,
	}, "session", nil))
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var patch entity.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	// onboarding completion is owned by the wizard
	patch.OnboardingCompleted = nil
	st, ok := storeOf(c)
	if !ok {
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), st, patch)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if u == nil {
		writeError(c, h.Logger, app.ErrNoSession)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, u, "profile updated", nil))
}

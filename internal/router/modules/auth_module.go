package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/creatorlink/internal/interface/http"
	"github.com/oksasatya/creatorlink/internal/interface/middleware"
)

// AuthModule wires sign-in, signup and session endpoints.
// Public: POST /api/auth/{login,register,verify-otp,resend-otp,refresh,logout}, GET /api/me
// Protected: PATCH /api/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	otpLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByClient(), nil)
	resendLimiter := middleware.RateLimit(m.Redis, 3, time.Minute, middleware.KeyByClient(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", loginLimiter, m.Handler.Login)
		auth.POST("/register", registerLimiter, m.Handler.Register)
		auth.POST("/verify-otp", otpLimiter, m.Handler.VerifyOTP)
		auth.POST("/resend-otp", resendLimiter, m.Handler.ResendOTP)
		auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
		auth.POST("/logout", m.Handler.Logout)
	}

	rg.GET("/me", m.Handler.Me)
	rg.PATCH("/me",
		middleware.RequireSession(),
		middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.UpdateMe,
	)
}

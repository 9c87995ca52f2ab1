package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aspiantech/ogle-api/internal/container"
	handlers "github.com/aspiantech/ogle-api/internal/interface/http"
	"github.com/aspiantech/ogle-api/internal/interface/middleware"
)

// UserModule wires account, session and newsletter routes.
// Public: register, verify-email, login, password reset, newsletter subscribe.
// Protected: profile reads/updates, logout, ad-hoc email send.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	accountLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/register", accountLimiter, m.Handler.Register)
	rg.POST("/auth/verify-email", accountLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/password/reset-request", accountLimiter, m.Handler.RequestPasswordReset)
	rg.POST("/auth/password/reset", accountLimiter, m.Handler.ResetPassword)
	rg.POST("/newsletter/subscribe", accountLimiter, m.Handler.Subscribe)

	rg.GET("/users/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(container.GetTokens()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP()))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.PATCH("/users/:id", m.Handler.Update)
		auth.POST("/email/send", m.Handler.SendEmail)
	}
}

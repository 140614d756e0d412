package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/handler"
	"github.com/tradesoncall/backend/internal/middleware"
	"github.com/tradesoncall/backend/internal/repository"
	"github.com/tradesoncall/backend/internal/utils"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Search *handler.SearchHandler
	Verify *handler.VerifyHandler
}

// Register wires all routes onto the Echo instance.  The auth gate runs on
// the whole /api/v1 group; routes that demand an identity additionally carry
// RequireAuth.
func Register(e *echo.Echo, h Handlers, codec *utils.TokenCodec, tokens *repository.TokenRepo, users *repository.UserRepo, log *zap.Logger) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/api/v1")
	v1.Use(middleware.AuthGate(codec, tokens, users, log))

	// Open endpoints.
	v1.POST("/users/register", h.User.Register)
	v1.POST("/users/verify/request", h.Verify.RequestCode)
	v1.POST("/users/verify/confirm", h.Verify.ConfirmCode)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.POST("/auth/logout", h.Auth.Logout)

	// Endpoints that require an authenticated caller.
	authed := v1.Group("", middleware.RequireAuth())
	authed.GET("/users", h.User.List)
	authed.GET("/users/me", h.User.Me)
	authed.GET("/users/:id", h.User.GetByID)
	authed.PUT("/users/:id/password", h.User.ChangePassword)
	authed.POST("/search/services", h.Search.Services)
	authed.GET("/search/history", h.Search.GetHistory)
}

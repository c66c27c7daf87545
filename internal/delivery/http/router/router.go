// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"corpgate/internal/delivery/http/middleware"
	"corpgate/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AdminHandler   *handler.AdminHandler
	TableHandler   *handler.TableHandler
	CommentHandler *handler.CommentHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	adminHandler   *handler.AdminHandler
	tableHandler   *handler.TableHandler
	commentHandler *handler.CommentHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		adminHandler:   params.AdminHandler,
		tableHandler:   params.TableHandler,
		commentHandler: params.CommentHandler,
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Route capabilities are declared here, next to the route they widen.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/refresh", r.authHandler.Refresh)
	}

	// Auth routes behind the bearer gate
	authedGroup := e.Group("/auth")
	authedGroup.Use(r.authMiddleware.Authenticate())
	{
		authedGroup.POST("/change-password", r.authHandler.ChangePassword)
		authedGroup.GET("/me", r.authHandler.Me)
	}

	// Onboarding: the only route an Inactive account may reach
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate(middleware.CapInactiveAccess))
	{
		userGroup.POST("/setInitialPassword", r.authHandler.SetInitialPassword)
	}

	// Account administration, admins only
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate())
	adminGroup.Use(r.authMiddleware.RequireAdmin())
	{
		adminGroup.POST("/listUsers", r.adminHandler.ListUsers)
		adminGroup.POST("/createUser", r.adminHandler.CreateUser)
		adminGroup.POST("/setAllowedPages", r.adminHandler.SetAllowedPages)
		adminGroup.POST("/setUserStatus", r.adminHandler.SetUserStatus)
		adminGroup.POST("/setUserRole", r.adminHandler.SetUserRole)
		adminGroup.POST("/deleteUser", r.adminHandler.DeleteUser)
		adminGroup.POST("/resetPassword", r.adminHandler.ResetPassword)
	}

	// Generic data endpoints
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate())
	{
		apiGroup.POST("/list", r.tableHandler.List)
		apiGroup.POST("/create", r.tableHandler.Create)
		apiGroup.POST("/updateStatus", r.tableHandler.UpdateStatus, r.authMiddleware.RequireOwnership())
		apiGroup.POST("/formMeta", r.tableHandler.FormMeta)
		apiGroup.POST("/pages_list", r.tableHandler.PagesList)

		apiGroup.POST("/comments/list", r.commentHandler.List)
		apiGroup.POST("/comments/add", r.commentHandler.Add)

		apiGroup.POST("/profile/get", r.profileHandler.Get)
		apiGroup.POST("/profile/upsert", r.profileHandler.Upsert)
	}
}

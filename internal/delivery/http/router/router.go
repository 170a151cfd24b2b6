// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"contacts/internal/delivery/http/middleware"
	"contacts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ContactHandler *handler.ContactHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	contactHandler *handler.ContactHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		contactHandler: params.ContactHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		// The refresh token rides the Authorization header.
		authGroup.GET("/refresh_token", r.authHandler.RefreshToken)
		authGroup.GET("/confirm_email/:token", r.authHandler.ConfirmEmail)
		authGroup.GET("/confirm_email", r.authHandler.ConfirmEmail)
	}

	// Account routes that require authentication
	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		userGroup.GET("/me", r.userHandler.Me)
		userGroup.PUT("/avatar", r.userHandler.UpdateAvatar)
	}

	// Contact book routes that require authentication
	contactGroup := api.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.POST("", r.contactHandler.Create)
		contactGroup.GET("", r.contactHandler.List)
		// Registered before /:id so "birthdays" never parses as a contact id.
		contactGroup.GET("/birthdays", r.contactHandler.Birthdays)
		contactGroup.GET("/:id", r.contactHandler.Get)
		contactGroup.PUT("/:id", r.contactHandler.Update)
		contactGroup.DELETE("/:id", r.contactHandler.Delete)
	}
}

package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/taskdeck/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/signup", handlers.Auth.Signup)
	r.POST("/api/auth/login", handlers.Auth.Login)
	r.POST("/api/auth/forgot-password", handlers.Auth.ForgotPassword)
	r.POST("/api/auth/reset-password", handlers.Auth.ResetPassword)

	// Protected routes
	r.GET("/api/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/tasks", authMiddleware(handlers.Task.Create))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.Delete))

	return r
}

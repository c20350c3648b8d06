package api

import (
	"github.com/labstack/echo/v4"

	"github.com/avelichko/scribe/internal/auth"
)

// Dependencies holds all handler instances and middleware for route wiring.
type Dependencies struct {
	Auth    *AuthHandler
	Posts   *PostHandler
	Uploads *UploadHandler

	TokenService *auth.TokenService
}

// SetupRouter registers all API routes on the Echo instance.
func SetupRouter(e *echo.Echo, deps *Dependencies) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	sessionMw := deps.TokenService.Middleware()

	// Auth
	e.POST("/auth/register", deps.Auth.Register)
	e.POST("/auth/login", deps.Auth.Login)
	e.GET("/auth/me", deps.Auth.Me, sessionMw)
	e.POST("/auth/logout", deps.Auth.Logout)

	// Posts — listing is public, mutations require a session
	e.GET("/posts", deps.Posts.List)
	e.POST("/posts", deps.Posts.Create, sessionMw)
	e.PUT("/posts/:id", deps.Posts.Update, sessionMw)
	e.DELETE("/posts/:id", deps.Posts.Delete, sessionMw)

	// Uploads
	e.POST("/uploads", deps.Uploads.Upload, sessionMw)
}

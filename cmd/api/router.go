package main

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/rbac"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/container"
)

// NewRouter assembles the gin engine: global middleware, static assets,
// health endpoint and the versioned API surface with per-route permissions.
func NewRouter(c *container.Container) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.OptionalAuth(c.JWTManager))

	// Cover files and the placeholder image are served straight off disk.
	webRoot := c.Config.Upload.WebRoot
	r.Static("/uploads", filepath.Join(webRoot, "uploads"))
	r.Static("/images", filepath.Join(webRoot, "images"))

	r.GET("/health", func(ctx *gin.Context) {
		status := http.StatusOK
		dbOK, cacheOK := true, true
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbOK = false
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheOK = false
			status = http.StatusServiceUnavailable
		}
		overall := "ok"
		if !dbOK || !cacheOK {
			overall = "degraded"
		}
		ctx.JSON(status, gin.H{
			"status":   overall,
			"version":  c.Config.App.Version,
			"database": dbOK,
			"cache":    cacheOK,
		})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.GET("/me", middleware.RequireAuth(c.JWTManager), c.UserHandler.Me)
	}

	authors := v1.Group("/authors")
	{
		authors.GET("", middleware.RequirePermission(c.Gate, rbac.PermissionViewAuthors), c.AuthorHandler.GetAll)
		authors.GET("/:id", middleware.RequirePermission(c.Gate, rbac.PermissionViewAuthors), c.AuthorHandler.GetByID)
		authors.POST("", middleware.RequirePermission(c.Gate, rbac.PermissionManageAuthors), c.AuthorHandler.Create)
		authors.PUT("/:id", middleware.RequirePermission(c.Gate, rbac.PermissionManageAuthors), c.AuthorHandler.Update)
		authors.DELETE("/:id", middleware.RequirePermission(c.Gate, rbac.PermissionManageAuthors), c.AuthorHandler.Delete)

		authors.POST("/:id/subscribe", middleware.RequirePermission(c.Gate, rbac.PermissionSubscribeToAuthor), c.SubscriptionHandler.Subscribe)
		authors.DELETE("/:id/subscribe", middleware.RequirePermission(c.Gate, rbac.PermissionSubscribeToAuthor), c.SubscriptionHandler.Unsubscribe)
	}

	books := v1.Group("/books")
	{
		books.GET("", middleware.RequirePermission(c.Gate, rbac.PermissionViewBooks), c.BookHandler.GetAll)
		books.GET("/:id", middleware.RequirePermission(c.Gate, rbac.PermissionViewBooks), c.BookHandler.GetByID)
		books.POST("", middleware.RequirePermission(c.Gate, rbac.PermissionManageBooks), c.BookHandler.Create)
		books.PUT("/:id", middleware.RequirePermission(c.Gate, rbac.PermissionManageBooks), c.BookHandler.Update)
		books.DELETE("/:id", middleware.RequirePermission(c.Gate, rbac.PermissionManageBooks), c.BookHandler.Delete)
		books.POST("/:id/cover", middleware.RequirePermission(c.Gate, rbac.PermissionManageBooks), c.BookHandler.UploadCover)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("/top-authors", middleware.RequirePermission(c.Gate, rbac.PermissionViewReports), c.ReportHandler.TopAuthors)
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return r
}

package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/fixpoint/fixpoint/internal/config"
	"github.com/fixpoint/fixpoint/internal/pkg/upload"
	"github.com/fixpoint/fixpoint/internal/server/http/handlers"
	"github.com/fixpoint/fixpoint/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ServiceFacade, uploads *upload.Store, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(corsMiddleware(cfg.CORSOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	uploadHandler := handlers.NewUploadHandler(uploads)

	engine.Static("/uploads", uploads.Dir())

	api := engine.Group("/api")
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthRequired(facade))
	authenticated.POST("/orders", orderHandler.Submit)
	authenticated.GET("/orders", orderHandler.List)
	// The role branch inside List scopes customers to their own orders.
	authenticated.GET("/orders/my", orderHandler.List)
	authenticated.GET("/orders/:id", orderHandler.Get)
	authenticated.POST("/orders/:id/take", orderHandler.Take)
	authenticated.POST("/orders/:id/finish", orderHandler.Finish)
	authenticated.POST("/orders/:id/cancel", orderHandler.Cancel)
	authenticated.POST("/orders/:id/rate", orderHandler.Rate)
	authenticated.PATCH("/orders/:id", orderHandler.Update)
	authenticated.GET("/orders/:id/logs", orderHandler.Logs)
	authenticated.POST("/upload", uploadHandler.Upload)

	return engine
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "Accept-Encoding"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	return cors.New(corsCfg)
}

package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/coursemart/internal/server/http/handlers"
	"github.com/polkiloo/coursemart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	enrollmentHandler := handlers.NewEnrollmentHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/courses", catalogHandler.List)
	api.GET("/courses/:id", catalogHandler.Get)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.GET("/auth/me", authHandler.Me)

	private.GET("/cart", cartHandler.Get)
	private.DELETE("/cart", cartHandler.Clear)
	private.POST("/cart/items", cartHandler.Add)
	private.DELETE("/cart/items/:courseId", cartHandler.Remove)

	private.POST("/orders", orderHandler.Create)
	private.GET("/orders", orderHandler.List)
	private.GET("/orders/:id", orderHandler.Get)
	private.POST("/orders/:id/pay", orderHandler.Pay)
	private.POST("/checkout", orderHandler.Checkout)

	private.GET("/enrollments", enrollmentHandler.List)
	private.GET("/enrollments/:courseId", enrollmentHandler.Status)

	return engine
}

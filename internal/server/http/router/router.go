package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/notify"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const maxRequestBytes = 1 << 20

// Params lists router dependencies. Hub is optional.
type Params struct {
	fx.In

	Facade  handlers.StoreFacade
	Logger  *slog.Logger
	Metrics *metrics.Registry
	Hub     *notify.Hub `optional:"true"`
	Config  *config.Config
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(cors.New(corsConfig(p.Config)))
	engine.Use(middleware.DecompressRequest(maxRequestBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/admin/orders/stream"})))

	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	var streamer handlers.Streamer
	if p.Hub != nil {
		streamer = p.Hub
	}

	authHandler := handlers.NewAuthHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade)
	cartHandler := handlers.NewCartHandler(p.Facade, p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	adminHandler := handlers.NewAdminHandler(p.Facade, p.Facade, streamer)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(p.Facade))
	userAuth.GET("/profile", authHandler.Profile)
	userAuth.POST("/push-token", authHandler.SavePushToken)

	api.GET("/categories", catalogHandler.Categories)
	api.GET("/products", catalogHandler.Products)
	api.GET("/products/:id", catalogHandler.Product)

	cart := api.Group("/cart")
	cart.Use(middleware.CartSession(), middleware.OptionalAuth(p.Facade))
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:id", cartHandler.UpdateItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)
	cart.POST("/submit", cartHandler.Submit)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(p.Facade))
	orders.GET("", orderHandler.List)
	orders.GET("/recent", orderHandler.Recent)
	orders.GET("/:id", orderHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(p.Facade), middleware.AdminRequired())
	admin.GET("/orders", adminHandler.List)
	admin.GET("/orders/stream", adminHandler.Stream)
	admin.GET("/orders/:id", adminHandler.Get)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateStatus)
	admin.PATCH("/orders/:id/items", adminHandler.UpdateItems)

	return engine
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Encoding", "Authorization", middleware.CartSessionHeader},
		ExposeHeaders:    []string{"Authorization", middleware.CartSessionHeader},
		MaxAge:           12 * time.Hour,
	}
	origins := []string{"*"}
	if cfg != nil && len(cfg.CORSOrigins) > 0 {
		origins = cfg.CORSOrigins
	}
	if slices.Contains(origins, "*") {
		// Wildcard origins never receive credentials.
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

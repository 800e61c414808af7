package router

import (
	"fmt"
	"strings"

	"github.com/vitrine-next/internal/config"
	shellhandlers "github.com/vitrine-next/internal/http/handlers/shell"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := shellhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vitrine"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/state", h.GetState)

		ui := apiV1.Group("/ui")
		{
			ui.POST("/cart-panel", h.SetCartPanel)
			ui.POST("/login-panel", h.SetLoginPanel)
			ui.POST("/navigation/ack", h.AckNavigation)
		}

		session := apiV1.Group("/session")
		{
			session.GET("", h.GetSession)
			session.POST("/login", RateLimitMiddleware(c.Redis, loginRule, KeyByIPAndJSONField("username")), h.Login)
			session.POST("/token", h.LoginWithToken)
			session.POST("/logout", h.Logout)
		}

		cart := apiV1.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.DELETE("", h.ClearCart)
			cart.POST("/items", h.AddCartItem)
			cart.PUT("/items/:product_id", h.SetCartItemQuantity)
			cart.DELETE("/items/:product_id", h.RemoveCartItem)
		}

		orders := apiV1.Group("/orders")
		{
			orders.GET("/current", h.GetOrderState)
			orders.POST("", h.SubmitOrder)
			orders.POST("/reset", h.ResetOrder)
		}

		apiV1.GET("/products", h.ListProducts)
		apiV1.GET("/products/featured", h.FeaturedProducts)
		apiV1.GET("/products/:id/image", h.ProductImage)

		apiV1.GET("/categories", h.ListCategories)
		apiV1.POST("/categories", h.CreateCategory)
		apiV1.DELETE("/categories/:id", h.DeleteCategory)

		apiV1.GET("/customers", h.ListCustomers)
		apiV1.POST("/customers", h.CreateCustomer)
		apiV1.PUT("/customers/:id", h.UpdateCustomer)

		apiV1.GET("/users", h.ListUsers)
		apiV1.POST("/users", h.CreateUser)
		apiV1.PUT("/users/:id", h.UpdateUser)
		apiV1.DELETE("/users/:id", h.DeleteUser)

		chat := apiV1.Group("/chat")
		{
			chat.GET("/history", h.GetChatHistory)
			chat.DELETE("/history", h.ClearChatHistory)
			chat.POST("/messages", h.SendChatMessage)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

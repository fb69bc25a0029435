package handler

import (
	"FinanceAdvisor/internal/auth"
	"FinanceAdvisor/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires all routes onto a gin engine.
func SetupRouter(h *Handler, tokens *auth.TokenManager) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/profile", h.GetProfile)
		protected.POST("/profile", h.CreateProfile)
		protected.PUT("/profile", h.UpdateProfile)

		// the model endpoint is the expensive resource, throttle it
		modelLimiter := middleware.ModelRateLimiter()
		protected.POST("/advice", modelLimiter, h.GenerateAdvice)
		protected.GET("/advice", h.ListAdvice)
		protected.GET("/advice/:id", h.GetAdvice)

		protected.POST("/chat", modelLimiter, h.Chat)
		protected.GET("/chat/history", h.GetChatHistory)
	}

	router.GET("/ws/chat", h.HandleChatSocket)

	return router
}

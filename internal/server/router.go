package server

import (
	"github.com/gin-gonic/gin"

	"github.com/lovishduggal/brainwave-backend/internal/http/handlers"
	"github.com/lovishduggal/brainwave-backend/internal/http/middleware"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	CORSAllowOrigins    []string

	HealthHandler       *handlers.HealthHandler
	ConversationHandler *handlers.ConversationHandler
	QuizHandler         *handlers.QuizHandler
	UploadHandler       *handlers.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AttachRequestContext())
	router.Use(middleware.CORS(cfg.CORSAllowOrigins))
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.Check)

	api := router.Group("/api")
	{
		api.GET("/upload", cfg.UploadHandler.AuthParams)

		quiz := api.Group("/quiz")
		quiz.Use(cfg.RateLimitMiddleware.Limit("quiz"))
		{
			quiz.GET("/generate", cfg.QuizHandler.Generate)
			quiz.POST("/evaluate", cfg.QuizHandler.Evaluate)
		}
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/chats", cfg.ConversationHandler.CreateChat)
		protected.GET("/userchats", cfg.ConversationHandler.GetUserChats)
		protected.GET("/chats/:id", cfg.ConversationHandler.GetChat)
		protected.PUT("/chats/:id", cfg.ConversationHandler.UpdateChat)
	}

	return router
}

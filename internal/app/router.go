package app

import (
	"github.com/gin-gonic/gin"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		AuthMiddleware:      middlewareset.Auth,
		RateLimitMiddleware: middlewareset.RateLimit,
		CORSAllowOrigins:    cfg.CORSAllowOrigins,
		HealthHandler:       handlerset.Health,
		ConversationHandler: handlerset.Conversation,
		QuizHandler:         handlerset.Quiz,
		UploadHandler:       handlerset.Upload,
	})
}

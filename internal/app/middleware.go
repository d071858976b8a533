package app

import (
	"time"

	"github.com/lovishduggal/brainwave-backend/internal/http/middleware"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
		RateLimit: middleware.NewRateLimitMiddleware(log, clients.Redis, cfg.RateLimitPerMinute, time.Minute),
	}
}

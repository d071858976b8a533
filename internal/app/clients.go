package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/env"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/platform/gemini"
)

type Clients struct {
	Gemini gemini.Client
	Redis  *redis.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	geminiClient, err := gemini.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	}

	// Redis is optional; without it the rate limiter is a pass-through.
	var rdb *redis.Client
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: env.GetEnv("REDIS_PASSWORD", "", log),
			DB:       env.GetEnvAsInt("REDIS_DB", 0, log),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return Clients{}, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Redis connection established", "addr", addr)
	}

	return Clients{Gemini: geminiClient, Redis: rdb}, nil
}

package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/env"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

type Config struct {
	Port               string   `yaml:"port"`
	JWTSecretKey       string   `yaml:"jwt_secret_key"`
	CORSAllowOrigins   []string `yaml:"cors_allow_origins"`
	QuizDefaultCount   int      `yaml:"quiz_default_count"`
	QuizMaxCount       int      `yaml:"quiz_max_count"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	ImageKitPrivateKey string   `yaml:"imagekit_private_key"`
}

// LoadConfig reads the optional CONFIG_FILE yaml, then lets environment
// variables override whatever the file set.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:               "3000",
		JWTSecretKey:       "defaultsecret",
		QuizDefaultCount:   5,
		QuizMaxCount:       20,
		RateLimitPerMinute: 30,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("Config file unreadable, using env only", "path", path, "error", err.Error())
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("Config file invalid, using env only", "path", path, "error", err.Error())
		} else {
			log.Info("Config file loaded", "path", path)
		}
	}

	cfg.Port = env.GetEnv("PORT", cfg.Port, log)
	cfg.JWTSecretKey = env.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	if origins := strings.TrimSpace(env.GetEnv("CORS_ALLOW_ORIGINS", "", log)); origins != "" {
		cfg.CORSAllowOrigins = splitAndTrim(origins)
	}
	cfg.QuizDefaultCount = env.GetEnvAsInt("QUIZ_DEFAULT_COUNT", cfg.QuizDefaultCount, log)
	cfg.QuizMaxCount = env.GetEnvAsInt("QUIZ_MAX_COUNT", cfg.QuizMaxCount, log)
	cfg.RateLimitPerMinute = env.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute, log)
	cfg.ImageKitPrivateKey = env.GetEnv("IMAGEKIT_PRIVATE_KEY", cfg.ImageKitPrivateKey, log)

	return cfg
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

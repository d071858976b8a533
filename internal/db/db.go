package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/env"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

// Service owns the gorm handle. The driver is chosen by DB_DRIVER:
// "postgres" (default) or "sqlite" for local and test runs.
type Service struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewService(log *logger.Logger) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(strings.TrimSpace(env.GetEnv("DB_DRIVER", "postgres", log)))

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		host := env.GetEnv("POSTGRES_HOST", "localhost", log)
		port := env.GetEnv("POSTGRES_PORT", "5432", log)
		user := env.GetEnv("POSTGRES_USER", "postgres", log)
		password := env.GetEnv("POSTGRES_PASSWORD", "", log)
		name := env.GetEnv("POSTGRES_NAME", "brainwave", log)
		sslMode := env.GetEnv("POSTGRES_SSLMODE", "disable", log)
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, name, sslMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		path := env.GetEnv("DB_PATH", "brainwave.db", log)
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	serviceLog.Info("Database connection established", "driver", driver)
	return &Service{log: serviceLog, db: gdb}, nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func (s *Service) AutoMigrateAll() error {
	if err := s.db.AutoMigrate(
		&domain.Conversation{},
		&domain.ConversationIndex{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	s.log.Info("Database migrations applied")
	return nil
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

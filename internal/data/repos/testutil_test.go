package repos

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lovishduggal/brainwave-backend/internal/domain"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/dbctx"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

// testDB opens an in-memory sqlite database, or postgres when
// TEST_POSTGRES_DSN is set. The postgres path runs inside a transaction that
// rolls back on cleanup so tests leave no rows behind.
func testDB(t *testing.T) (*gorm.DB, dbctx.Context) {
	t.Helper()

	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		if err := db.AutoMigrate(&domain.Conversation{}, &domain.ConversationIndex{}); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		tx := db.Begin()
		if tx.Error != nil {
			t.Fatalf("begin tx: %v", tx.Error)
		}
		t.Cleanup(func() { tx.Rollback() })
		return db, dbctx.Context{Ctx: context.Background(), Tx: tx}
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One pooled connection, or every conn sees its own empty :memory: db.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.Conversation{}, &domain.ConversationIndex{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, dbctx.Context{Ctx: context.Background()}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

package testutil

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

var dbSeq atomic.Int64

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("development")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return log
}

// DB returns a migrated database. Each call gets an isolated in-memory sqlite
// database unless TEST_POSTGRES_DSN points at a real postgres.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		name := fmt.Sprintf("file:bestway_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
		db, err = gorm.Open(sqlite.Open(name), cfg)
	}
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// in-memory sqlite lives as long as one connection is open
		sqlDB.SetMaxOpenConns(1)
		tb.Cleanup(func() { _ = sqlDB.Close() })
	}
	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// Count returns the number of rows of model's table.
func Count(tb testing.TB, db *gorm.DB, model any) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("count: %v", err)
	}
	return n
}

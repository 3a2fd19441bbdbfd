package repository

import (
	"path/filepath"
	"plan-fulfillment/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// serialize access so concurrent tests exercise the CAS, not sqlite locking
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Order{},
		&model.ProcessedTransaction{},
		&model.Customer{},
		&model.Affiliate{},
		&model.Commission{},
		&model.Sale{},
		&model.FunnelEvent{},
	))

	return db
}

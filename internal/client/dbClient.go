package client

import (
	"log"
	"plan-fulfillment/internal/model"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitSqliteClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
		TranslateError: true, // duplicate inserts surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Order{},
		&model.ProcessedTransaction{},
		&model.Customer{},
		&model.Affiliate{},
		&model.Commission{},
		&model.Sale{},
		&model.FunnelEvent{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}

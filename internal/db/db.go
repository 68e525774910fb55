package db

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/config"
	"github.com/TatianaS7/booksy/internal/models"
)

// NewDB opens Postgres when DATABASE_URL looks like a postgres DSN, otherwise
// treats it as a SQLite file path (the original dev setup).
func NewDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	if strings.HasPrefix(cfg.DBUrl, "postgres://") || strings.HasPrefix(cfg.DBUrl, "postgresql://") {
		dialector = postgres.Open(cfg.DBUrl)
	} else {
		dialector = sqlite.Open(cfg.DBUrl)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	)
}

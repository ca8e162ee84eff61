package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/s/lms/internal/config"
	"github.com/s/lms/internal/logger"
)

// Connect opens postgres, retrying while the database container wakes up.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	log = log.With("component", "database")

	var (
		db  *gorm.DB
		err error
	)
	for i := 0; i < cfg.ConnectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err == nil {
			log.Info("connected to database", "attempt", i+1)
			return db, nil
		}

		log.Warn("database connection failed, retrying", "attempt", i+1, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", cfg.ConnectAttempts, err)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cdentertainment/site-api/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultConnLifetime = 5 * time.Minute
	slowQueryThreshold  = 500 * time.Millisecond
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 2
)

// zapWriter routes gorm's printf-style logger into zap.
type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Warnf(format, args...)
}

// NewGorm returns a gorm.DB for the site database. Only slow queries and errors are logged.
func NewGorm(cfg config.PostgresConfig, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	gormLogger := logger.New(zapWriter{sugar: log.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(ConnString(cfg)), &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres: retrieve sql db: %w", err)
	}

	maxOpen := defaultMaxOpenConns
	if cfg.MaxConns > 0 {
		maxOpen = int(cfg.MaxConns)
	}
	maxIdle := defaultMaxIdleConns
	if cfg.MinConns > 0 {
		maxIdle = int(cfg.MinConns)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(parseDuration(cfg.MaxConnLifetime, defaultConnLifetime))
	if idle := parseDuration(cfg.MaxConnIdleTime, 0); idle > 0 {
		sqlDB.SetConnMaxIdleTime(idle)
	}

	return db, nil
}

// AutoMigrate uses GORM to create or update the tables for the provided models.
func AutoMigrate(ctx context.Context, db *gorm.DB, models ...interface{}) error {
	if db == nil || len(models) == 0 {
		return nil
	}

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("postgres: auto migrate: %w", err)
	}

	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

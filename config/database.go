package config

import (
	"FocusLock/models"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN builds the postgres connection string. Render databases need TLS.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		if strings.Contains(d.Host, "render.com") {
			sslmode = "require"
		} else {
			sslmode = "disable"
		}
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, sslmode, d.TimeZone)
}

func InitDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	log.Info().Str("host", cfg.Host).Str("dbname", cfg.Name).Str("port", cfg.Port).Msg("[config] connecting to database")

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Device{},
		&models.AppSchedule{},
		&models.AppUsageLimit{},
		&models.OneTimeBlock{},
		&models.FocusSession{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	log.Info().Msg("[config] successfully connected to database")
	return db, nil
}

// InitRedis connects to REDIS_URL. An empty URL returns nil and usage
// counters stay in memory.
func InitRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

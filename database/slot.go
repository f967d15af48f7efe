package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/gorm/logger"

	"github.com/camden-git/filmreel/archive"
	"github.com/camden-git/filmreel/config"
)

// OpenSlot builds the persistence backend named by cfg.StorageBackend. The
// returned closer releases its connections.
func OpenSlot(ctx context.Context, cfg config.Config) (archive.Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
		db, err := InitGormDB(cfg.DatabasePath, logger.Warn)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		return NewGormSlot(db), sqlDB.Close, nil

	case config.BackendFile:
		slot, err := NewFileSlot(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using file slot directory: %s", cfg.StateDir)
		return slot, noop, nil

	case config.BackendRedis:
		slot, err := NewRedisSlot(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TLS:      cfg.RedisTLS,
			Prefix:   "filmreel:",
		})
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using redis slot at %s (db %d)", cfg.RedisAddr, cfg.RedisDB)
		return slot, slot.Close, nil

	case config.BackendMongo:
		slot, err := NewMongoSlot(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using mongo slot in database %s", cfg.MongoDatabase)
		return slot, func() error { return slot.Close(context.Background()) }, nil

	case config.BackendMemory:
		log.Printf("Warning: using in-memory slot, the archive will not survive a restart")
		return NewMemorySlot(), noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage backend '%s'", cfg.StorageBackend)
}

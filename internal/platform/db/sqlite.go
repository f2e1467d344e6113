package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fatflowers/motorvault/internal/models"
	cfgpkg "github.com/fatflowers/motorvault/pkg/config"
	gormzap "github.com/fatflowers/motorvault/pkg/gormlog"
)

// NewDB opens the on-device sqlite database backing the key-value store and
// the storage audit log.
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Storage.Path == "" {
		l.Error("storage path is empty")
		return nil, gorm.ErrInvalidDB
	}
	db, err := gorm.Open(sqlite.Open(cfg.Storage.Path), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		l.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	l.Infow("opened sqlite database", "path", cfg.Storage.Path)
	return db, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.KVEntry{},
		&models.StorageAuditLog{},
	); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing sqlite database")
			return sqlDB.Close()
		},
	})
}

package storage

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/motorvault/internal/models"
)

// KV is the async string-keyed persistent store the state core is built on.
// Values are raw strings; the caller decides how they are encoded. The state
// core is the exclusive owner of its keys — nothing else reads or writes them.
type KV interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys []string) error
	AllKeys(ctx context.Context) ([]string, error)
}

type gormKV struct {
	db *gorm.DB
}

// NewKV returns a KV backed by the kv_entry table.
func NewKV(db *gorm.DB) KV {
	return &gormKV{db: db}
}

func (s *gormKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *gormKV) SetItem(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *gormKV) RemoveItem(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.KVEntry{}).Error
}

func (s *gormKV) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&models.KVEntry{}).Error
}

func (s *gormKV) AllKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&models.KVEntry{}).Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

var Module = fx.Options(
	fx.Provide(NewKV),
)

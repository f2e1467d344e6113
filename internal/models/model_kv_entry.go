package models

import "time"

// KVEntry backs the on-device key-value store: one row per storage key, the
// value kept as the raw string exactly as written (entities are JSON blobs,
// theme_mode is a bare string).
type KVEntry struct {
	Key       string    `gorm:"column:key;type:varchar(128);primary_key" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entry"
}

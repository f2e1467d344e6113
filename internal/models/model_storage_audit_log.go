package models

import (
	"time"

	"gorm.io/datatypes"
)

type StorageAuditAction string

const (
	StorageAuditActionCorruptionPurged StorageAuditAction = "corruption_purged"
	StorageAuditActionSuspectRemoved   StorageAuditAction = "suspect_removed"
	StorageAuditActionFullReset        StorageAuditAction = "full_reset"
	StorageAuditActionClearAll         StorageAuditAction = "clear_all"
)

// StorageAuditLog records destructive self-healing actions taken against the
// key-value store (corruption purges, resets) for later inspection.
type StorageAuditLog struct {
	ID        string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Action    StorageAuditAction `gorm:"column:action;type:varchar(64);not null;index" json:"action"`
	StoreKey  string             `gorm:"column:store_key;type:varchar(128);not null" json:"store_key"`
	Reason    string             `gorm:"column:reason;type:varchar(128)" json:"reason"`
	// Detail stores additional JSON data (for example: a truncated sample of
	// the rejected raw value).
	Detail    datatypes.JSON `gorm:"column:detail;default:'{}'" json:"detail"`
	CreatedAt time.Time      `json:"created_at"`
}

func (StorageAuditLog) TableName() string {
	return "storage_audit_log"
}

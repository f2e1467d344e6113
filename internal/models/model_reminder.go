package models

import (
	"time"

	"github.com/fatflowers/motorvault/pkg/types"
)

// Reminder is persisted under the "reminders" key. Completing a reminder
// appends a frozen snapshot to History and flips the completion flags; the
// live title/type/date/time are left untouched.
type Reminder struct {
	ID          string             `json:"id"`
	VehicleID   string             `json:"vehicleId"`
	Title       string             `json:"title"`
	Type        types.ReminderType `json:"type"`
	Date        time.Time          `json:"date"`
	Time        string             `json:"time"`
	Description string             `json:"description,omitempty"`
	IsCustom    bool               `json:"isCustom"`
	IsCompleted bool               `json:"isCompleted"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	History     []ReminderHistory  `json:"history,omitempty"`
}

// ReminderHistory is an immutable audit snapshot captured at completion time.
type ReminderHistory struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Type        types.ReminderType `json:"type"`
	Date        time.Time          `json:"date"`
	Time        string             `json:"time"`
	Description string             `json:"description,omitempty"`
	CompletedAt time.Time          `json:"completedAt"`
}

package store

import (
	"time"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/pkg/types"
)

// Patches carry the independently settable fields of an entity. A nil field
// leaves the stored value untouched; identifiers, creation timestamps and
// history are never patchable.

type VehiclePatch struct {
	Type               *types.VehicleType `json:"type"`
	Name               *string            `json:"name"`
	RegistrationNumber *string            `json:"registrationNumber"`
	Make               *string            `json:"make"`
	Model              *string            `json:"model"`
	Year               *string            `json:"year"`
	ImageURI           *string            `json:"imageUri"`
}

func (p *VehiclePatch) apply(v *models.Vehicle) {
	if p.Type != nil {
		v.Type = *p.Type
	}
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.RegistrationNumber != nil {
		v.RegistrationNumber = *p.RegistrationNumber
	}
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.ImageURI != nil {
		v.ImageURI = *p.ImageURI
	}
}

type DocumentPatch struct {
	VehicleID  *string               `json:"vehicleId"`
	Type       *types.DocumentType   `json:"type"`
	CustomName *string               `json:"customName"`
	ExpiryDate *time.Time            `json:"expiryDate"`
	ImageURI   *string               `json:"imageUri"`
	Status     *types.DocumentStatus `json:"status"`
}

func (p *DocumentPatch) apply(d *models.Document) {
	if p.VehicleID != nil {
		d.VehicleID = *p.VehicleID
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.CustomName != nil {
		d.CustomName = *p.CustomName
	}
	if p.ExpiryDate != nil {
		d.ExpiryDate = *p.ExpiryDate
	}
	if p.ImageURI != nil {
		d.ImageURI = *p.ImageURI
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
}

type ReminderPatch struct {
	VehicleID   *string             `json:"vehicleId"`
	Title       *string             `json:"title"`
	Type        *types.ReminderType `json:"type"`
	Date        *time.Time          `json:"date"`
	Time        *string             `json:"time"`
	Description *string             `json:"description"`
	IsCustom    *bool               `json:"isCustom"`
	IsCompleted *bool               `json:"isCompleted"`
}

func (p *ReminderPatch) apply(r *models.Reminder) {
	if p.VehicleID != nil {
		r.VehicleID = *p.VehicleID
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.IsCustom != nil {
		r.IsCustom = *p.IsCustom
	}
	if p.IsCompleted != nil {
		r.IsCompleted = *p.IsCompleted
	}
}

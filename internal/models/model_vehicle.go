package models

import (
	"time"

	"github.com/fatflowers/motorvault/pkg/types"
)

// Vehicle is persisted under the "vehicles" key as part of a JSON array.
// All vehicles implicitly belong to the single current user. Deleting a
// vehicle cascades to its documents and reminders.
type Vehicle struct {
	ID                 string            `json:"id"`
	Type               types.VehicleType `json:"type"`
	Name               string            `json:"name"`
	RegistrationNumber string            `json:"registrationNumber"`
	Make               string            `json:"make"`
	Model              string            `json:"model"`
	Year               string            `json:"year"`
	ImageURI           string            `json:"imageUri,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

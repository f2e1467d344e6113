package models

import (
	"time"

	"github.com/fatflowers/motorvault/pkg/types"
)

// Document is a dated vehicle paper (insurance, registration, ...) persisted
// under the "documents" key. Status is derived from ExpiryDate on read but
// also stored redundantly. History holds frozen snapshots of prior renewals,
// oldest first.
type Document struct {
	ID         string               `json:"id"`
	VehicleID  string               `json:"vehicleId"`
	Type       types.DocumentType   `json:"type"`
	CustomName string               `json:"customName,omitempty"`
	ExpiryDate time.Time            `json:"expiryDate"`
	ImageURI   string               `json:"imageUri,omitempty"`
	Status     types.DocumentStatus `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
	History    []DocumentHistory    `json:"history,omitempty"`
}

// DocumentHistory is an immutable snapshot of a document's prior
// {expiryDate, imageUri, updatedAt} captured at renewal time. It is never
// deleted except together with its owning document.
type DocumentHistory struct {
	ID         string    `json:"id"`
	ExpiryDate time.Time `json:"expiryDate"`
	ImageURI   string    `json:"imageUri,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DisplayName returns CustomName for "other" documents when set, otherwise
// the document type.
func (d *Document) DisplayName() string {
	if d.Type == types.DocumentTypeOther && d.CustomName != "" {
		return d.CustomName
	}
	return string(d.Type)
}

package models

import (
	"time"

	"github.com/fatflowers/motorvault/pkg/types"
)

// User is the singleton account record persisted under the "user" key.
// There is at most one; login/signup replace it wholesale and logout removes
// the key. JSON field names match the on-device storage layout.
type User struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	Email              string                   `json:"email"`
	Phone              string                   `json:"phone"`
	SubscriptionStatus types.SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionExpiry time.Time                `json:"subscriptionExpiry"`
	ProfilePhoto       string                   `json:"profilePhoto,omitempty"`
}

// SubscriptionExpired reports whether the stored expiry has passed.
func (u *User) SubscriptionExpired(now time.Time) bool {
	return u != nil && now.After(u.SubscriptionExpiry)
}

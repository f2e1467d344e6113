package dateutil

import (
	"fmt"
	"math"
	"time"

	"github.com/fatflowers/motorvault/pkg/types"
)

// ExpiringWindowDays is the number of days before expiry during which a
// document is reported as "expiring".
const ExpiringWindowDays = 60

// DaysUntilExpiry returns the number of days from now until expiry, rounded
// up. Negative when the expiry is in the past.
func DaysUntilExpiry(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// StatusFor buckets an expiry date: expired when past, expiring when within
// the 60-day window (boundary inclusive), valid otherwise.
func StatusFor(expiry, now time.Time) types.DocumentStatus {
	days := DaysUntilExpiry(expiry, now)
	if days < 0 {
		return types.DocumentStatusExpired
	}
	if days <= ExpiringWindowDays {
		return types.DocumentStatusExpiring
	}
	return types.DocumentStatusValid
}

// FormatDate renders a date like "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// StatusText returns a human-readable expiry description for display.
func StatusText(daysUntil int) string {
	switch {
	case daysUntil < 0:
		return fmt.Sprintf("Expired %d days ago", -daysUntil)
	case daysUntil == 0:
		return "Expires today"
	case daysUntil == 1:
		return "Expires tomorrow"
	case daysUntil <= ExpiringWindowDays:
		return fmt.Sprintf("Expires in %d days", daysUntil)
	default:
		return fmt.Sprintf("Valid for %d days", daysUntil)
	}
}

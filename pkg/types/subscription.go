package types

type SubscriptionStatus string

const (
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
	SubscriptionStatusTrial   SubscriptionStatus = "trial"
)

// SubscriptionPlan describes a purchasable premium plan. Plans come from
// configuration; the upgrade flow is mocked and never contacts a payment
// provider.
type SubscriptionPlan struct {
	ID             string  `json:"id" mapstructure:"id"`
	Name           string  `json:"name" mapstructure:"name"`
	DurationMonths int     `json:"duration_months" mapstructure:"duration_months"`
	MonthlyPrice   float64 `json:"monthly_price" mapstructure:"monthly_price"`
	TotalPrice     float64 `json:"total_price" mapstructure:"total_price"`
	Savings        string  `json:"savings,omitempty" mapstructure:"savings"`
}

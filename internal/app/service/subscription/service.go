package subscription

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/config"
	"github.com/fatflowers/motorvault/pkg/logctx"
	"github.com/fatflowers/motorvault/pkg/types"
)

// Service implements the mocked premium flow: plan catalog from config,
// status evaluation from the stored user snapshot, and an "activation" that
// only rewrites the local user record. No payment provider is involved.
type Service struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	store *store.Store
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, st *store.Store) *Service {
	return &Service{cfg: cfg, log: log, store: st}
}

// Status is the derived premium state for the current user.
type Status struct {
	IsPremium        bool       `json:"is_premium"`
	IsTrialActive    bool       `json:"is_trial_active"`
	DaysLeftInTrial  int        `json:"days_left_in_trial"`
	SubscriptionEnds *time.Time `json:"subscription_ends,omitempty"`
}

// Evaluate buckets the user's subscription snapshot. A nil user is simply
// not premium.
func (s *Service) Evaluate(user *models.User, now time.Time) Status {
	if user == nil {
		return Status{}
	}

	expiry := user.SubscriptionExpiry
	expired := now.After(expiry)

	switch user.SubscriptionStatus {
	case types.SubscriptionStatusActive:
		return Status{IsPremium: !expired, SubscriptionEnds: &expiry}
	case types.SubscriptionStatusTrial:
		daysLeft := int(math.Ceil(expiry.Sub(now).Hours() / 24))
		if daysLeft < 0 {
			daysLeft = 0
		}
		return Status{
			IsPremium:        daysLeft > 0,
			IsTrialActive:    daysLeft > 0,
			DaysLeftInTrial:  daysLeft,
			SubscriptionEnds: &expiry,
		}
	default:
		return Status{SubscriptionEnds: &expiry}
	}
}

// Plans returns the configured plan catalog.
func (s *Service) Plans() []*types.SubscriptionPlan {
	return s.cfg.Plans
}

// Activate marks the current user as premium for the chosen plan's duration.
// Pricing is display-only; nothing is charged.
func (s *Service) Activate(ctx context.Context, planID string) (*models.User, error) {
	plan := s.cfg.GetPlanByID(planID)
	if plan == nil {
		return nil, fmt.Errorf("unknown plan: %s", planID)
	}
	user := s.store.User()
	if user == nil {
		return nil, fmt.Errorf("no current user")
	}

	user.SubscriptionStatus = types.SubscriptionStatusActive
	user.SubscriptionExpiry = time.Now().Add(time.Duration(plan.DurationMonths) * 30 * 24 * time.Hour)
	s.store.SetUser(ctx, user)

	logctx.FromCtx(ctx, s.log).Infow("premium activated", "plan", plan.ID, "expires", user.SubscriptionExpiry)
	return user, nil
}

// ShouldPromptUpgrade reports whether the UI should surface the upgrade
// modal: not premium and no trial running.
func (s *Service) ShouldPromptUpgrade(now time.Time) bool {
	status := s.Evaluate(s.store.User(), now)
	return !status.IsPremium && !status.IsTrialActive
}

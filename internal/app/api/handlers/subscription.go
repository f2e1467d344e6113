package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	subsvc "github.com/fatflowers/motorvault/internal/app/service/subscription"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/response"
)

type ActivateRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

// @Summary      Available plans
// @Tags         Subscription
// @Produce      json
// @Router       /api/v1/subscription/plans [get]
func SubscriptionPlans(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(sub.Plans()))
	}
}

// @Summary      Subscription status for the current user
// @Tags         Subscription
// @Produce      json
// @Router       /api/v1/subscription/status [get]
func SubscriptionStatus(sub *subsvc.Service, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(sub.Evaluate(st.User(), time.Now())))
	}
}

// @Summary      Activate a plan (mocked purchase)
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Router       /api/v1/subscription/activate [post]
func ActivateSubscription(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ActivateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		user, err := sub.Activate(c.Request.Context(), req.PlanID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, sub *subsvc.Service, st *store.Store) {
	r.GET("/subscription/plans", SubscriptionPlans(sub))
	r.GET("/subscription/status", SubscriptionStatus(sub, st))
	r.POST("/subscription/activate", ActivateSubscription(sub))
}

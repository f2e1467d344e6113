package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/response"
	"github.com/fatflowers/motorvault/pkg/types"
)

type AddReminderRequest struct {
	VehicleID   string             `json:"vehicleId" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Type        types.ReminderType `json:"type" binding:"required"`
	Date        time.Time          `json:"date" binding:"required"`
	Time        string             `json:"time" binding:"required"`
	Description string             `json:"description"`
	IsCustom    bool               `json:"isCustom"`
}

// @Summary      List reminders
// @Tags         Reminders
// @Produce      json
// @Router       /api/v1/reminders [get]
func ListReminders(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		reminders := st.Reminders()
		if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
			reminders = lo.Filter(reminders, func(r models.Reminder, _ int) bool { return r.VehicleID == vehicleID })
		}
		c.JSON(http.StatusOK, response.OKT(reminders))
	}
}

// @Summary      Add a reminder
// @Tags         Reminders
// @Accept       json
// @Produce      json
// @Router       /api/v1/reminders [post]
func AddReminder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddReminderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		reminder := st.AddReminder(c.Request.Context(), models.Reminder{
			VehicleID:   req.VehicleID,
			Title:       req.Title,
			Type:        req.Type,
			Date:        req.Date,
			Time:        req.Time,
			Description: req.Description,
			IsCustom:    req.IsCustom,
		})
		c.JSON(http.StatusOK, response.OKT(reminder))
	}
}

// @Summary      Patch a reminder
// @Description  Permitted even after completion; history is never touched here
// @Tags         Reminders
// @Accept       json
// @Produce      json
// @Router       /api/v1/reminders/{id} [patch]
func UpdateReminder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch store.ReminderPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		reminder, found := st.UpdateReminder(c.Request.Context(), c.Param("id"), patch)
		if !found {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "reminder not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(reminder))
	}
}

// @Summary      Delete a reminder
// @Tags         Reminders
// @Produce      json
// @Router       /api/v1/reminders/{id} [delete]
func DeleteReminder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.DeleteReminder(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

// @Summary      Complete a reminder
// @Description  Appends an audit snapshot to history and flips the completion flags
// @Tags         Reminders
// @Produce      json
// @Router       /api/v1/reminders/{id}/complete [post]
func CompleteReminder(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		reminder, found := st.CompleteReminder(c.Request.Context(), c.Param("id"))
		if !found {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "reminder not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(reminder))
	}
}

func RegisterReminderRoutes(r gin.IRouter, st *store.Store) {
	r.GET("/reminders", ListReminders(st))
	r.POST("/reminders", AddReminder(st))
	r.PATCH("/reminders/:id", UpdateReminder(st))
	r.DELETE("/reminders/:id", DeleteReminder(st))
	r.POST("/reminders/:id/complete", CompleteReminder(st))
}

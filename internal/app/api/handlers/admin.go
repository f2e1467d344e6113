package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/fatflowers/motorvault/internal/app/service/auditlog"
	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/dateutil"
	"github.com/fatflowers/motorvault/pkg/response"
	"github.com/fatflowers/motorvault/pkg/types"
)

type StorageStats struct {
	HasUser   bool `json:"has_user"`
	Vehicles  int  `json:"vehicles"`
	Documents int  `json:"documents"`
	Reminders int  `json:"reminders"`

	DocumentsExpired  int `json:"documents_expired"`
	DocumentsExpiring int `json:"documents_expiring"`
	DocumentsValid    int `json:"documents_valid"`

	RemindersCompleted int `json:"reminders_completed"`
}

// @Summary      Storage statistics
// @Tags         Admin
// @Produce      json
// @Router       /api/v1/admin/storage_stats [get]
func GetStorageStats(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		docs := st.Documents()
		reminders := st.Reminders()

		byStatus := lo.CountValuesBy(docs, func(d models.Document) types.DocumentStatus {
			return dateutil.StatusFor(d.ExpiryDate, now)
		})
		stats := StorageStats{
			HasUser:           st.User() != nil,
			Vehicles:          len(st.Vehicles()),
			Documents:         len(docs),
			Reminders:         len(reminders),
			DocumentsExpired:  byStatus[types.DocumentStatusExpired],
			DocumentsExpiring: byStatus[types.DocumentStatusExpiring],
			DocumentsValid:    byStatus[types.DocumentStatusValid],
			RemindersCompleted: lo.CountBy(reminders, func(r models.Reminder) bool {
				return r.IsCompleted
			}),
		}
		c.JSON(http.StatusOK, response.OKT(stats))
	}
}

// @Summary      Clear all app data
// @Description  Removes every managed storage key and resets in-memory state
// @Tags         Admin
// @Produce      json
// @Router       /api/v1/admin/clear_all_data [post]
func ClearAllData(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.ClearAllData(c.Request.Context())
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "cleared"}))
	}
}

// @Summary      Clear corrupted data
// @Description  Re-runs corruption checks, removes failing keys, then reloads
// @Tags         Admin
// @Produce      json
// @Router       /api/v1/admin/clear_corrupted_data [post]
func ClearCorruptedData(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.ClearCorruptedData(c.Request.Context())
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "cleaned"}))
	}
}

// @Summary      List storage audit logs
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Router       /api/v1/admin/audit_logs [post]
func ListAuditLogs(audit *auditlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auditlog.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := audit.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, st *store.Store, audit *auditlog.Service) {
	r.GET("/storage_stats", GetStorageStats(st))
	r.POST("/clear_all_data", ClearAllData(st))
	r.POST("/clear_corrupted_data", ClearCorruptedData(st))
	r.POST("/audit_logs", ListAuditLogs(audit))
}

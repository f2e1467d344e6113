package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterAuthRoutes(g, nil, nil)
	RegisterVehicleRoutes(g, nil)
	RegisterDocumentRoutes(g, nil)
	RegisterReminderRoutes(g, nil)
	RegisterSubscriptionRoutes(g, nil, nil)
	RegisterAssistantRoutes(g, nil, nil)
	RegisterSettingsRoutes(g, nil)
	admin := g.Group("/admin")
	RegisterAdminRoutes(admin, nil, nil)
	RegisterHealthRoutes(r)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("GET /healthz"))

	require.True(t, contains("POST /api/v1/auth/login"))
	require.True(t, contains("POST /api/v1/auth/signup"))
	require.True(t, contains("POST /api/v1/auth/logout"))
	require.True(t, contains("GET /api/v1/auth/me"))

	require.True(t, contains("GET /api/v1/vehicles"))
	require.True(t, contains("POST /api/v1/vehicles"))
	require.True(t, contains("GET /api/v1/vehicles/:id"))
	require.True(t, contains("PATCH /api/v1/vehicles/:id"))
	require.True(t, contains("DELETE /api/v1/vehicles/:id"))

	require.True(t, contains("GET /api/v1/documents"))
	require.True(t, contains("POST /api/v1/documents"))
	require.True(t, contains("PATCH /api/v1/documents/:id"))
	require.True(t, contains("DELETE /api/v1/documents/:id"))
	require.True(t, contains("POST /api/v1/documents/:id/renew"))
	require.True(t, contains("GET /api/v1/documents/:id/history"))

	require.True(t, contains("GET /api/v1/reminders"))
	require.True(t, contains("POST /api/v1/reminders"))
	require.True(t, contains("PATCH /api/v1/reminders/:id"))
	require.True(t, contains("DELETE /api/v1/reminders/:id"))
	require.True(t, contains("POST /api/v1/reminders/:id/complete"))

	require.True(t, contains("GET /api/v1/subscription/plans"))
	require.True(t, contains("GET /api/v1/subscription/status"))
	require.True(t, contains("POST /api/v1/subscription/activate"))

	require.True(t, contains("POST /api/v1/assistant/chat"))

	require.True(t, contains("GET /api/v1/settings/theme"))
	require.True(t, contains("PUT /api/v1/settings/theme"))

	require.True(t, contains("GET /api/v1/admin/storage_stats"))
	require.True(t, contains("POST /api/v1/admin/clear_all_data"))
	require.True(t, contains("POST /api/v1/admin/clear_corrupted_data"))
	require.True(t, contains("POST /api/v1/admin/audit_logs"))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/response"
	"github.com/fatflowers/motorvault/pkg/types"
)

type ThemeRequest struct {
	Mode types.ThemeMode `json:"mode" binding:"required"`
}

// @Summary      Current theme mode
// @Tags         Settings
// @Produce      json
// @Router       /api/v1/settings/theme [get]
func GetTheme(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(map[string]types.ThemeMode{"mode": st.Theme(c.Request.Context())}))
	}
}

// @Summary      Set theme mode
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Router       /api/v1/settings/theme [put]
func SetTheme(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ThemeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := st.SetTheme(c.Request.Context(), req.Mode); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]types.ThemeMode{"mode": req.Mode}))
	}
}

func RegisterSettingsRoutes(r gin.IRouter, st *store.Store) {
	r.GET("/settings/theme", GetTheme(st))
	r.PUT("/settings/theme", SetTheme(st))
}

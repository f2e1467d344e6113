package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	asvc "github.com/fatflowers/motorvault/internal/app/service/assistant"
	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/response"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// vehicleContext summarizes the garage for the assistant log line.
func vehicleContext(vehicles []models.Vehicle) string {
	if len(vehicles) == 0 {
		return "no vehicles"
	}
	names := lo.Map(vehicles, func(v models.Vehicle, _ int) string {
		return fmt.Sprintf("%s %s (%s)", v.Make, v.Model, v.Type)
	})
	return strings.Join(names, ", ")
}

// @Summary      Chat with the assistant
// @Description  Mocked: returns a canned diagnostic reply after a simulated delay
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Router       /api/v1/assistant/chat [post]
func AssistantChat(svc *asvc.Service, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		reply, err := svc.Chat(c.Request.Context(), req.Message, vehicleContext(st.Vehicles()))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&ChatResponse{Reply: reply}))
	}
}

func RegisterAssistantRoutes(r gin.IRouter, svc *asvc.Service, st *store.Store) {
	r.POST("/assistant/chat", AssistantChat(svc, st))
}

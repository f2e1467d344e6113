package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/response"
	"github.com/fatflowers/motorvault/pkg/types"
)

type AddVehicleRequest struct {
	Type               types.VehicleType `json:"type" binding:"required"`
	Name               string            `json:"name" binding:"required"`
	RegistrationNumber string            `json:"registrationNumber" binding:"required"`
	Make               string            `json:"make"`
	Model              string            `json:"model"`
	Year               string            `json:"year"`
	ImageURI           string            `json:"imageUri"`
}

// @Summary      List vehicles
// @Tags         Vehicles
// @Produce      json
// @Router       /api/v1/vehicles [get]
func ListVehicles(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(st.Vehicles()))
	}
}

// @Summary      Add a vehicle
// @Tags         Vehicles
// @Accept       json
// @Produce      json
// @Router       /api/v1/vehicles [post]
func AddVehicle(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if !req.Type.Valid() {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid vehicle type"))
			return
		}

		vehicle := st.AddVehicle(c.Request.Context(), models.Vehicle{
			Type:               req.Type,
			Name:               req.Name,
			RegistrationNumber: req.RegistrationNumber,
			Make:               req.Make,
			Model:              req.Model,
			Year:               req.Year,
			ImageURI:           req.ImageURI,
		})
		c.JSON(http.StatusOK, response.OKT(vehicle))
	}
}

// @Summary      Get a vehicle
// @Tags         Vehicles
// @Produce      json
// @Router       /api/v1/vehicles/{id} [get]
func GetVehicle(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		for _, v := range st.Vehicles() {
			if v.ID == id {
				c.JSON(http.StatusOK, response.OKT(v))
				return
			}
		}
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "vehicle not found"))
	}
}

// @Summary      Patch a vehicle
// @Tags         Vehicles
// @Accept       json
// @Produce      json
// @Router       /api/v1/vehicles/{id} [patch]
func UpdateVehicle(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch store.VehiclePatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		vehicle, found := st.UpdateVehicle(c.Request.Context(), c.Param("id"), patch)
		if !found {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "vehicle not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(vehicle))
	}
}

// @Summary      Delete a vehicle
// @Description  Cascades to the vehicle's documents and reminders
// @Tags         Vehicles
// @Produce      json
// @Router       /api/v1/vehicles/{id} [delete]
func DeleteVehicle(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.DeleteVehicle(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func RegisterVehicleRoutes(r gin.IRouter, st *store.Store) {
	r.GET("/vehicles", ListVehicles(st))
	r.POST("/vehicles", AddVehicle(st))
	r.GET("/vehicles/:id", GetVehicle(st))
	r.PATCH("/vehicles/:id", UpdateVehicle(st))
	r.DELETE("/vehicles/:id", DeleteVehicle(st))
}

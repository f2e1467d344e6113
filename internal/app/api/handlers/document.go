package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/dateutil"
	"github.com/fatflowers/motorvault/pkg/response"
	"github.com/fatflowers/motorvault/pkg/types"
)

type AddDocumentRequest struct {
	VehicleID  string             `json:"vehicleId" binding:"required"`
	Type       types.DocumentType `json:"type" binding:"required"`
	CustomName string             `json:"customName"`
	ExpiryDate time.Time          `json:"expiryDate" binding:"required"`
	ImageURI   string             `json:"imageUri"`
}

type RenewDocumentRequest struct {
	NewExpiryDate time.Time `json:"newExpiryDate" binding:"required"`
	ImageURI      string    `json:"imageUri"`
}

// DocumentItem is a document plus its read-side derived expiry state.
type DocumentItem struct {
	models.Document
	DerivedStatus types.DocumentStatus `json:"derivedStatus"`
	DaysUntil     int                  `json:"daysUntilExpiry"`
	StatusText    string               `json:"statusText"`
}

func toDocumentItem(d models.Document, now time.Time) DocumentItem {
	days := dateutil.DaysUntilExpiry(d.ExpiryDate, now)
	return DocumentItem{
		Document:      d,
		DerivedStatus: dateutil.StatusFor(d.ExpiryDate, now),
		DaysUntil:     days,
		StatusText:    dateutil.StatusText(days),
	}
}

// @Summary      List documents
// @Description  Optionally filtered by vehicle_id; carries derived expiry status
// @Tags         Documents
// @Produce      json
// @Router       /api/v1/documents [get]
func ListDocuments(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		docs := st.Documents()
		if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
			docs = lo.Filter(docs, func(d models.Document, _ int) bool { return d.VehicleID == vehicleID })
		}
		items := lo.Map(docs, func(d models.Document, _ int) DocumentItem { return toDocumentItem(d, now) })
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// @Summary      Add a document
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Router       /api/v1/documents [post]
func AddDocument(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddDocumentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.Type == types.DocumentTypeOther && req.CustomName == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "customName required for type other"))
			return
		}

		doc := st.AddDocument(c.Request.Context(), models.Document{
			VehicleID:  req.VehicleID,
			Type:       req.Type,
			CustomName: req.CustomName,
			ExpiryDate: req.ExpiryDate,
			ImageURI:   req.ImageURI,
		})
		c.JSON(http.StatusOK, response.OKT(toDocumentItem(doc, time.Now())))
	}
}

// @Summary      Patch a document
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Router       /api/v1/documents/{id} [patch]
func UpdateDocument(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch store.DocumentPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		doc, found := st.UpdateDocument(c.Request.Context(), c.Param("id"), patch)
		if !found {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "document not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toDocumentItem(doc, time.Now())))
	}
}

// @Summary      Delete a document
// @Tags         Documents
// @Produce      json
// @Router       /api/v1/documents/{id} [delete]
func DeleteDocument(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.DeleteDocument(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

// @Summary      Renew a document
// @Description  Archives the current expiry into history and applies the new one
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Router       /api/v1/documents/{id}/renew [post]
func RenewDocument(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RenewDocumentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		doc, found := st.RenewDocument(c.Request.Context(), c.Param("id"), req.NewExpiryDate, req.ImageURI)
		if !found {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "document not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toDocumentItem(doc, time.Now())))
	}
}

// @Summary      Document renewal history
// @Tags         Documents
// @Produce      json
// @Router       /api/v1/documents/{id}/history [get]
func DocumentHistory(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		for _, d := range st.Documents() {
			if d.ID == id {
				c.JSON(http.StatusOK, response.OKT(d.History))
				return
			}
		}
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "document not found"))
	}
}

func RegisterDocumentRoutes(r gin.IRouter, st *store.Store) {
	r.GET("/documents", ListDocuments(st))
	r.POST("/documents", AddDocument(st))
	r.PATCH("/documents/:id", UpdateDocument(st))
	r.DELETE("/documents/:id", DeleteDocument(st))
	r.POST("/documents/:id/renew", RenewDocument(st))
	r.GET("/documents/:id/history", DocumentHistory(st))
}

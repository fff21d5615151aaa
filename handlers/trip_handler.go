package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/types"
)

// TripHandler exposes trip CRUD.
type TripHandler struct {
	tripService TripServiceInterface
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService TripServiceInterface) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// Create handles POST /v1/trips.
func (h *TripHandler) Create(c *gin.Context) {
	var req types.CreateTripRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// List handles GET /v1/trips?projectId=...
func (h *TripHandler) List(c *gin.Context) {
	projectID := c.Query("projectId")
	if projectID == "" {
		_ = c.Error(apperrors.ValidationFailed("projectId query parameter is required", ""))
		return
	}

	trips, err := h.tripService.ListByProject(c.Request.Context(), getUserIDFromContext(c), projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if trips == nil {
		trips = []types.Trip{}
	}
	c.JSON(http.StatusOK, trips)
}

// Get handles GET /v1/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	trip, role, err := h.tripService.Get(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip, "role": role})
}

// Update handles PATCH /v1/trips/:id.
func (h *TripHandler) Update(c *gin.Context) {
	var update types.TripUpdate
	if !bindJSONOrError(c, &update) {
		return
	}

	trip, err := h.tripService.Update(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// Delete handles DELETE /v1/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	if err := h.tripService.Delete(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

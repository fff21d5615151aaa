package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tahseel-app/tahseel-backend/types"
)

// ParticipantHandler exposes participant CRUD. Participant lists hang off the
// trip routes; single-participant operations use flat routes.
type ParticipantHandler struct {
	participantService ParticipantServiceInterface
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(participantService ParticipantServiceInterface) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// Create handles POST /v1/participants.
func (h *ParticipantHandler) Create(c *gin.Context) {
	var req types.CreateParticipantRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	participant, err := h.participantService.Create(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// ListByTrip handles GET /v1/trips/:id/participants.
func (h *ParticipantHandler) ListByTrip(c *gin.Context) {
	participants, err := h.participantService.ListByTrip(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// Get handles GET /v1/participants/:id.
func (h *ParticipantHandler) Get(c *gin.Context) {
	participant, err := h.participantService.Get(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// Update handles PATCH /v1/participants/:id.
func (h *ParticipantHandler) Update(c *gin.Context) {
	var update types.ParticipantUpdate
	if !bindJSONOrError(c, &update) {
		return
	}

	participant, err := h.participantService.Update(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// Delete handles DELETE /v1/participants/:id.
func (h *ParticipantHandler) Delete(c *gin.Context) {
	if err := h.participantService.Delete(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

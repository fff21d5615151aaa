package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tahseel-app/tahseel-backend/types"
)

// Pinger reports database liveness. Satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Liveness handles GET /health/liveness. It answers without touching the
// database.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

// Check handles GET /health. Reports degraded with 503 when the database is
// unreachable.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := types.HealthStatus{
		Status:    "ok",
		Database:  "up",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	}

	httpStatus := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.Database = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, status)
}

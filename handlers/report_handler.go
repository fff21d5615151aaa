package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the read-only financial reports.
type ReportHandler struct {
	reportService ReportServiceInterface
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ProjectSummary handles GET /v1/projects/:id/report.
func (h *ReportHandler) ProjectSummary(c *gin.Context) {
	summary, err := h.reportService.GetProjectSummary(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TripReport handles GET /v1/trips/:id/report.
func (h *ReportHandler) TripReport(c *gin.Context) {
	report, err := h.reportService.GetTripReport(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vlockster/vlockster/internal/services"
	appErrors "github.com/vlockster/vlockster/pkg/errors"
	"github.com/vlockster/vlockster/pkg/response"
)

// ReportHandler exposes the platform report endpoints.
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler configures a report handler.
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Performance returns the creator performance report. Reports are
// all-or-nothing: any failed constituent query yields a 500.
func (h *ReportHandler) Performance(c *gin.Context) {
	report := h.reports.Performance(requestContext(c))
	if report == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// Content returns the content strategy report.
func (h *ReportHandler) Content(c *gin.Context) {
	report := h.reports.Content(requestContext(c))
	if report == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	response.Success(c, http.StatusOK, report)
}

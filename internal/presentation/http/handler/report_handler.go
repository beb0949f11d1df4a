package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmuthomi/tillpoint-api/internal/application/service"
	"github.com/jmuthomi/tillpoint-api/internal/presentation/http/dto/response"
)

// ReportHandler handles CSV report export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportSales handles exporting sales within an optional date range as CSV
func (h *ReportHandler) ExportSales(c *gin.Context) {
	var start, end *time.Time
	if t, ok := parseDate(c.Query("start_date")); ok {
		start = &t
	}
	if t, ok := parseDate(c.Query("end_date")); ok {
		end = &t
	}

	writeCSVHeaders(c, service.ExportFilename("sales"))
	if err := h.reportService.ExportSalesCSV(c.Request.Context(), c.Writer, start, end); err != nil {
		response.Error(c, err)
		return
	}
}

// ExportExpenses handles exporting expenses within an optional date range as CSV
func (h *ReportHandler) ExportExpenses(c *gin.Context) {
	var start, end *time.Time
	if t, ok := parseDate(c.Query("start_date")); ok {
		start = &t
	}
	if t, ok := parseDate(c.Query("end_date")); ok {
		end = &t
	}

	writeCSVHeaders(c, service.ExportFilename("expenses"))
	if err := h.reportService.ExportExpensesCSV(c.Request.Context(), c.Writer, start, end); err != nil {
		response.Error(c, err)
		return
	}
}

// ExportInventory handles exporting the current product inventory as CSV
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	writeCSVHeaders(c, service.ExportFilename("inventory"))
	if err := h.reportService.ExportInventoryCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

func writeCSVHeaders(c *gin.Context, filename string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
}

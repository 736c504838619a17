package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/report/model"
	"library-backend/internal/domains/report/service"
	"library-backend/internal/shared/response"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// OverdueReport lists open loans past their due date
// GET /api/v1/reports/overdue
func (h *ReportHandler) OverdueReport(c *gin.Context) {
	entries, err := h.reportService.OverdueReport(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to build overdue report")
		return
	}

	if entries == nil {
		entries = []*model.OverdueEntry{}
	}

	response.Success(c, http.StatusOK, entries)
}

// TopBooksReport ranks books by total checkouts
// GET /api/v1/reports/top-books?limit=5
func (h *ReportHandler) TopBooksReport(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "limit must be an integer")
			return
		}
		limit = parsed
	}

	books, err := h.reportService.TopBooksReport(c.Request.Context(), limit)
	if err != nil {
		response.InternalServerError(c, "Failed to build top books report")
		return
	}

	if books == nil {
		books = []*model.TopBook{}
	}

	response.Success(c, http.StatusOK, books)
}

package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reportHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportRoutes registers the aggregation view routes.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportHandler{reportingService: reportingService}
	rg.GET("/reports/ledger", h.getLedgerViews)
}

// getLedgerViews godoc
// @Summary Get ledger aggregation views
// @Description Money received, money paid, EMI outstanding and credit owed. Views may lag the latest write.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.LedgerViewsResponse
// @Failure 500 {object} map[string]string "Failed to compute ledger views"
// @Failure 504 {object} map[string]string "Timed out"
// @Security BearerAuth
// @Router /reports/ledger [get]
func (h *reportHandler) getLedgerViews(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	views, err := h.reportingService.GetLedgerViews(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute ledger views")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerViewsResponse(views))
}

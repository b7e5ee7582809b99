package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type emiHandler struct {
	calculator portssvc.EmiCalculatorSvc
}

func registerEmiRoutes(rg *gin.RouterGroup, calculator portssvc.EmiCalculatorSvc) {
	h := &emiHandler{calculator: calculator}
	rg.POST("/emi/preview", h.previewEmi)
}

// previewEmi godoc
// @Summary Preview an EMI plan
// @Description Computes principal, interest and installment amount without recording anything
// @Tags emi
// @Accept json
// @Produce json
// @Param plan body dto.EmiPreviewRequest true "Plan"
// @Success 200 {object} dto.EmiPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /emi/preview [post]
func (h *emiHandler) previewEmi(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EmiPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewEmi", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.calculator.PreviewEmi(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to preview EMI")
		return
	}
	c.JSON(http.StatusOK, resp)
}

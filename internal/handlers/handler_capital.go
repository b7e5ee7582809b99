package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/dealership_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type capitalHandler struct {
	capitalService portssvc.CapitalSvc
}

func newCapitalHandler(capitalService portssvc.CapitalSvc) *capitalHandler {
	return &capitalHandler{capitalService: capitalService}
}

// registerCapitalRoutes registers the capital balance routes.
func registerCapitalRoutes(rg *gin.RouterGroup, capitalService portssvc.CapitalSvc) {
	h := newCapitalHandler(capitalService)

	capital := rg.Group("/capital")
	{
		capital.GET("", h.getBalances)
		capital.GET("/integrity", h.verifyBalances)
		capital.GET("/adjustments", h.listAdjustments)
		capital.POST("/adjustments", h.adjustBalance)
		capital.PUT("/:type", h.setBalance)
	}
}

// getBalances godoc
// @Summary Get capital balances
// @Description Returns the Cash, Bank and Credit running balances
// @Tags capital
// @Produce json
// @Success 200 {array} dto.CapitalBalanceResponse
// @Failure 500 {object} map[string]string "Failed to retrieve balances"
// @Security BearerAuth
// @Router /capital [get]
func (h *capitalHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balances, err := h.capitalService.GetBalances(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapitalBalanceResponses(balances))
}

// adjustBalance godoc
// @Summary Adjust a capital balance
// @Description Moves one balance by a signed, non-zero delta and logs a MANUAL adjustment
// @Tags capital
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustCapitalRequest true "Adjustment"
// @Success 200 {object} dto.CapitalBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to adjust balance"
// @Security BearerAuth
// @Router /capital/adjustments [post]
func (h *capitalHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	balance, err := h.capitalService.AdjustBalance(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to adjust balance")
		return
	}

	logger.Info("Capital adjusted", slog.String("type", string(req.Type)), slog.String("delta", req.Delta.String()))
	c.JSON(http.StatusOK, dto.ToCapitalBalanceResponses([]domain.CapitalBalance{*balance})[0])
}

// setBalance godoc
// @Summary Set a capital balance
// @Description Sets one balance to an absolute value; the difference is logged as an INITIAL adjustment
// @Tags capital
// @Accept json
// @Produce json
// @Param type path string true "Capital type" Enums(Cash, Bank, Credit)
// @Param balance body dto.SetCapitalRequest true "New balance"
// @Success 200 {object} dto.CapitalBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to set balance"
// @Security BearerAuth
// @Router /capital/{type} [put]
func (h *capitalHandler) setBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	capitalType := domain.CapitalType(c.Param("type"))
	if !capitalType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown capital type: " + string(capitalType)})
		return
	}
	var req dto.SetCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	balance, err := h.capitalService.SetBalance(c.Request.Context(), capitalType, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to set balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapitalBalanceResponses([]domain.CapitalBalance{*balance})[0])
}

// listAdjustments godoc
// @Summary List capital adjustments
// @Tags capital
// @Produce json
// @Success 200 {array} domain.CapitalAdjustment
// @Failure 500 {object} map[string]string "Failed to list adjustments"
// @Security BearerAuth
// @Router /capital/adjustments [get]
func (h *capitalHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustments, err := h.capitalService.ListAdjustments(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list adjustments")
		return
	}
	c.JSON(http.StatusOK, adjustments)
}

// verifyBalances godoc
// @Summary Verify capital balances
// @Description Replays the adjustment log and reports balances that disagree with it
// @Tags capital
// @Produce json
// @Success 200 {object} dto.CapitalIntegrityResponse
// @Failure 500 {object} map[string]string "Failed to verify balances"
// @Security BearerAuth
// @Router /capital/integrity [get]
func (h *capitalHandler) verifyBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	discrepancies, err := h.capitalService.VerifyBalances(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to verify balances")
		return
	}
	if discrepancies == nil {
		discrepancies = []domain.CapitalDiscrepancy{}
	}
	c.JSON(http.StatusOK, dto.CapitalIntegrityResponse{
		Consistent:    len(discrepancies) == 0,
		Discrepancies: discrepancies,
	})
}

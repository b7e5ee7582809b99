package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles recording, listing and reversing ledger transactions.
type transactionHandler struct {
	recorder portssvc.RecorderSvcFacade
	reversal portssvc.ReversalSvc
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(recorder portssvc.RecorderSvcFacade, reversal portssvc.ReversalSvc) *transactionHandler {
	return &transactionHandler{
		recorder: recorder,
		reversal: reversal,
	}
}

// registerTransactionRoutes registers routes related to transactions and sales.
func registerTransactionRoutes(rg *gin.RouterGroup, recorder portssvc.RecorderSvcFacade, reversal portssvc.ReversalSvc) {
	h := newTransactionHandler(recorder, reversal)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/purchases", h.recordPurchase)
		transactions.POST("/sales", h.recordSale)
		transactions.POST("/broker-fees", h.recordBrokerFee)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", h.reverseTransaction)
	}

	sales := rg.Group("/sales")
	{
		sales.GET("/:saleID", h.getSale)
		sales.POST("/:saleID/emi-payments", h.recordEmiPayment)
	}
}

// userOrAbort returns the authenticated user id, writing 401 when it is missing.
func userOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// recordPurchase godoc
// @Summary Record a vehicle purchase
// @Description Creates the vehicle, the purchase record and the PURCHASE transaction, and moves capital and person balances
// @Tags transactions
// @Accept json
// @Produce json
// @Param purchase body dto.RecordPurchaseRequest true "Purchase details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or payment split mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 409 {object} map[string]string "Chassis number already exists"
// @Failure 500 {object} map[string]string "Failed to record purchase"
// @Security BearerAuth
// @Router /transactions/purchases [post]
func (h *transactionHandler) recordPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("person_id", req.PersonID))
	txn, err := h.recorder.RecordPurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record purchase")
		return
	}

	logger.Info("Purchase recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// recordSale godoc
// @Summary Record a vehicle sale
// @Description Sells an inventory vehicle for full payment or on EMI
// @Tags transactions
// @Accept json
// @Produce json
// @Param sale body dto.RecordSaleRequest true "Sale details"
// @Success 201 {object} dto.RecordSaleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer or vehicle not found"
// @Failure 409 {object} map[string]string "Vehicle already sold"
// @Failure 500 {object} map[string]string "Failed to record sale"
// @Security BearerAuth
// @Router /transactions/sales [post]
func (h *transactionHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("vehicle_id", req.VehicleID))
	txn, sale, err := h.recorder.RecordSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record sale")
		return
	}

	logger.Info("Sale recorded", slog.String("transaction_id", txn.TransactionID), slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusCreated, dto.RecordSaleResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Sale:        dto.ToSaleResponse(sale),
	})
}

// recordEmiPayment godoc
// @Summary Record an EMI installment
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param payment body dto.RecordEmiPaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or not an EMI sale"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale already completed"
// @Failure 500 {object} map[string]string "Failed to record EMI payment"
// @Security BearerAuth
// @Router /sales/{saleID}/emi-payments [post]
func (h *transactionHandler) recordEmiPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")
	var req dto.RecordEmiPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordEmiPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("sale_id", saleID))
	txn, err := h.recorder.RecordEmiPayment(c.Request.Context(), saleID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record EMI payment")
		return
	}

	logger.Info("EMI payment recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// recordBrokerFee godoc
// @Summary Record a broker fee
// @Tags transactions
// @Accept json
// @Produce json
// @Param fee body dto.RecordBrokerFeeRequest true "Fee details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to record broker fee"
// @Security BearerAuth
// @Router /transactions/broker-fees [post]
func (h *transactionHandler) recordBrokerFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordBrokerFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordBrokerFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	txn, err := h.recorder.RecordBrokerFee(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record broker fee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions ordered by date, oldest first, with token pagination
// @Tags transactions
// @Produce json
// @Param type query []string false "Transaction types" collectionFormat(multi)
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param personID query string false "Person ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.recorder.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txn, err := h.recorder.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getSale godoc
// @Summary Get a sale by ID
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *transactionHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sale, err := h.recorder.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// reverseTransaction godoc
// @Summary Reverse a transaction
// @Description Undoes every effect of the transaction and marks it CANCELLED. A transaction can be reversed once.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.ReversalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already reversed, in progress, or blocked by a dependent transaction"
// @Failure 500 {object} map[string]string "Failed to reverse transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("user_id", userID), slog.String("transaction_id", transactionID))
	result, err := h.reversal.ReverseTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse transaction")
		return
	}

	if result.Partial {
		logger.Warn("Transaction partially reversed", slog.Any("warnings", result.Warnings))
	}
	c.JSON(http.StatusOK, dto.ToReversalResponse(result))
}

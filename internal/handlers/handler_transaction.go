package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/boa-bank/transaction-service/internal/apperrors"
	portssvc "github.com/boa-bank/transaction-service/internal/core/ports/services"
	"github.com/boa-bank/transaction-service/internal/dto"
	"github.com/boa-bank/transaction-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// RegisterTransactionRoutes registers routes related to transactions.
// Exported so handler tests can mount the routes on a bare engine.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/transactions", h.listTransactionsByAccount)
	}
}

// parseIDParam parses a numeric path parameter, or rejects the request with a
// 400 before anything reaches the service layer.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid identifier in path",
			slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a valid number"})
		return 0, false
	}
	return id, true
}

// createTransaction godoc
// @Summary Create a new transaction
// @Description Resolves the owning account from the account service, validates the request and persists a new transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details (account carries the accountId)"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, unresolved account or validation error"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int64("account_id", req.Account.AccountID))
	logger.Info("Received request to create transaction")

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountUnavailable) {
			logger.Warn("Account not resolved for CreateTransaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account could not be resolved"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction by its numeric identifier
// @Tags transactions
// @Produce  json
// @Param   transactionID path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Identifier is not numeric"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, ok := parseIDParam(c, "transactionID")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.Int64("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction from service", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List all transactions
// @Description Retrieves every transaction; an empty store yields 204 rather than an empty 200 list
// @Tags transactions
// @Produce  json
// @Success 200 {array} dto.TransactionResponse
// @Success 204 "No transactions exist"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	if len(txns) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Retrieved transactions", slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// listTransactionsByAccount godoc
// @Summary List transactions for an account
// @Description Retrieves every transaction owned by the given account
// @Tags transactions
// @Produce  json
// @Param   accountID path int true "Account ID"
// @Success 200 {array} dto.TransactionResponse
// @Success 204 "The account has no transactions"
// @Failure 400 {object} map[string]string "Identifier is not numeric"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactionsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseIDParam(c, "accountID")
	if !ok {
		return
	}

	txns, err := h.transactionService.ListTransactionsByAccountID(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list transactions for account", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	if len(txns) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Overwrites the mutable fields (type, amount, description) of an existing transaction; the version field must match the stored version
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path int true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Updated fields plus current version"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid identifier or body"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Stale version"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, ok := parseIDParam(c, "transactionID")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found for update", slog.Int64("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Stale version on update", slog.Int64("transaction_id", transactionID))
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction was modified concurrently, re-read and retry"})
		} else {
			logger.Error("Failed to update transaction in service", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		}
		return
	}

	logger.Info("Transaction updated successfully", slog.Int64("transaction_id", transactionID), slog.Int("version", txn.Version))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction by its identifier; deleting a missing transaction is reported as 404
// @Tags transactions
// @Param   transactionID path int true "Transaction ID"
// @Success 204 "Transaction removed"
// @Failure 400 {object} map[string]string "Identifier is not numeric"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, ok := parseIDParam(c, "transactionID")
	if !ok {
		return
	}

	removed, err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID)
	if err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

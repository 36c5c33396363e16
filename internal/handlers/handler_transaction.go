package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/dto"
	"github.com/Arshia-r-m/Financial-tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler serves one transaction kind. Incomes and expenses share every
// route shape; only the kind differs.
type transactionHandler struct {
	txnService portssvc.TransactionSvc
	kind       domain.Kind
	currency   string
}

// registerTransactionRoutes registers /expenses and /incomes.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvc, currency string) {
	for _, kind := range domain.Kinds {
		h := &transactionHandler{txnService: txnService, kind: kind, currency: currency}

		group := rg.Group("/" + kind.Plural())
		{
			group.POST("", h.postTransaction)
			group.GET("", h.listTransactions)
			group.DELETE("/:id", h.deleteTransaction)
		}
	}
}

func (h *transactionHandler) logger(c *gin.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := h.logger(c)
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.txnService.PostTransaction(c.Request.Context(), h.kind, req.ToInput())
	if err != nil {
		respondError(c, logger.With(slog.String("account_name", req.AccountName)), err, "Failed to post "+string(h.kind))
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, h.currency))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := h.logger(c)

	txns, err := h.txnService.ListTransactions(c.Request.Context(), h.kind)
	if err != nil {
		respondError(c, logger, err, "Failed to list "+h.kind.Plural())
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(h.kind, txns, h.currency))
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := h.logger(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Warn("Invalid transaction id", slog.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction id must be an integer"})
		return
	}

	logger = logger.With(slog.Int64("transaction_id", id))
	if err := h.txnService.DeleteTransaction(c.Request.Context(), h.kind, id); err != nil {
		respondError(c, logger, err, "Failed to delete "+string(h.kind))
		return
	}

	c.Status(http.StatusNoContent)
}

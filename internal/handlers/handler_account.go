package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts and their ledger.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ls}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.POST("/deposit", h.manualDeposit)
		accounts.POST("/withdraw", h.manualWithdraw)
		accounts.POST("/:id/recompute", h.recomputeLedger)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(account.AccountType)))
	c.JSON(http.StatusCreated, dto.OK(dto.ToAccountResponse(account)))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("id")

	account, err := h.ledgerService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToAccountResponse(account)))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if !bindQuery(c, &params) {
		return
	}

	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToListAccountResponse(accounts)))
}

// listTransactions serves the account statement, newest first, with keyset
// pagination.
func (h *accountHandler) listTransactions(c *gin.Context) {
	accountID := c.Param("id")

	var params dto.ListTransactionsParams
	if !bindQuery(c, &params) {
		return
	}

	resp, err := h.ledgerService.ListTransactionsByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, err, "failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.OK(resp))
}

// recomputeLedger replays the account's full entry history and rewrites every
// balance snapshot. Safe to call repeatedly.
func (h *accountHandler) recomputeLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.ledgerService.RecomputeAccountLedger(c.Request.Context(), accountID, userID); err != nil {
		respondError(c, err, "failed to recompute account ledger")
		return
	}

	account, err := h.ledgerService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "failed to retrieve account")
		return
	}

	logger.Info("Account ledger recompute requested", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.OK(dto.ToAccountResponse(account)))
}

func (h *accountHandler) manualDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ManualEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.ManualDeposit(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to record deposit")
		return
	}

	logger.Info("Manual deposit recorded", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToTransactionResponse(txn)))
}

func (h *accountHandler) manualWithdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ManualEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.ManualWithdraw(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "failed to record withdrawal")
		return
	}

	logger.Info("Manual withdrawal recorded", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToTransactionResponse(txn)))
}

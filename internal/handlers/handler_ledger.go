package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
)

// ledgerHandler serves the per-account balance and ledger views computed from
// the append-only ledger.
type ledgerHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newLedgerHandler(balanceService portssvc.BalanceSvcFacade) *ledgerHandler {
	return &ledgerHandler{balanceService: balanceService}
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Recomputes the account balance from ledger rows dated at or before asOf, oriented to the account's normal balance
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Param asOf query string false "As-of date (yyyy-mm-dd), defaults to today"
// @Success 200 {object} domain.AccountBalance
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [get]
func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	_, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	asOf, err := parseDateQueryDefault(c, "asOf", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.balanceService.GetAccountBalance(c.Request.Context(), companyID, c.Param("accountID"), asOf)
	if err != nil {
		respondWithError(c, err, "Failed to get account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// getAccountLedger godoc
// @Summary Get an account's ledger rows
// @Description Returns the account's ledger rows in insertion order, running balances included
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {array} domain.LedgerRecord
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/ledger [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	_, companyID, ok := requestPrincipal(c)
	if !ok {
		return
	}

	records, err := h.balanceService.GetAccountLedger(c.Request.Context(), companyID, c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "Failed to get account ledger")
		return
	}
	c.JSON(http.StatusOK, records)
}

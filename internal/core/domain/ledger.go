package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is one immutable, append-only ledger row emitted when a journal
// entry is posted or voided. Rows are never mutated or deleted; voiding an
// entry appends an independent set of reversal rows instead of erasing the
// originals, so the ledger stays a durable, replayable event log.
type LedgerRecord struct {
	RecordID        string          `json:"recordID"`
	CompanyID       string          `json:"companyID"`
	AccountID       string          `json:"accountID"`
	EntryID         string          `json:"journalEntryID"`
	EntryNumber     string          `json:"entryNumber"` // reversal rows carry a -VOID suffix
	TransactionDate time.Time       `json:"transactionDate"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	// RunningBalance is the cumulative account balance immediately after this
	// row, signed relative to the account's normal balance. Continuation is in
	// insertion order, not transactionDate order: backdated entries append
	// after already-posted later entries.
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// SignedMovement returns the record's effect on its account balance: movements
// aligned with the account's normal balance increase it, opposed movements
// decrease it.
func (r LedgerRecord) SignedMovement(normal BalanceDirection) decimal.Decimal {
	if normal == DebitBalance {
		return r.Debit.Sub(r.Credit)
	}
	return r.Credit.Sub(r.Debit)
}

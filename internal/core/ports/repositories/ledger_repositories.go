package repositories

import (
	"context"
	"time"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// FindRecordsByEntryID retrieves the ledger rows emitted for an entry,
	// including any reversal rows, in insertion order.
	FindRecordsByEntryID(ctx context.Context, companyID, entryID string) ([]domain.LedgerRecord, error)

	// FindRecordsByAccount retrieves an account's ledger rows in insertion order.
	FindRecordsByAccount(ctx context.Context, companyID, accountID string) ([]domain.LedgerRecord, error)

	// SumAccountMovements sums debit and credit movements for an account over
	// rows with transactionDate <= asOf.
	SumAccountMovements(ctx context.Context, companyID, accountID string, asOf time.Time) (debit, credit decimal.Decimal, err error)
}

// LedgerRepositoryFacade is the read-side facade; writes happen only through
// the JournalEntryPoster transactional units.
type LedgerRepositoryFacade interface {
	LedgerReader
}

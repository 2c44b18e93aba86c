package repositories

import (
	"context"
	"time"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
)

// ReportingRepository provides the ledger aggregations the report engine
// consumes. All methods are read-only and see only committed ledger state.
type ReportingRepository interface {
	// GetAccountBalancesAsOf returns per-account debit/credit sums over all
	// ledger rows with transactionDate <= asOf, joined with account metadata.
	// Active accounts with no activity are included with zero sums.
	GetAccountBalancesAsOf(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error)

	// GetAccountActivity returns per-account debit/credit sums over ledger
	// rows with transactionDate inside [from, to].
	GetAccountActivity(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountActivity, error)
}

// DocumentRepository exposes the open-document boundary view of invoices and
// bills used by the aging reports.
type DocumentRepository interface {
	// FindOpenDocuments returns documents of the given kind whose status marks
	// them open (invoices Sent/Partial, bills Open/Partial) with balanceDue > 0.
	FindOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.OpenDocument, error)
}

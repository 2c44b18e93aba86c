package services

import (
	"context"
	"time"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
)

// BalanceSvcFacade computes point-in-time balances from ledger rows. Balances
// are always recomputed from the append-only ledger, never cached.
type BalanceSvcFacade interface {
	// GetAccountBalance aggregates all ledger rows for the account with
	// transactionDate <= asOf, oriented to the account's normal balance.
	GetAccountBalance(ctx context.Context, companyID, accountID string, asOf time.Time) (*domain.AccountBalance, error)

	// GetTrialBalance lists every account's balance as debit/credit columns.
	// Unequal totals are reported via the Balanced flag, never corrected.
	GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GetAccountLedger returns an account's rows in insertion order.
	GetAccountLedger(ctx context.Context, companyID, accountID string) ([]domain.LedgerRecord, error)
}

// ReportingService generates the derived financial statements. These are the
// only entry points consumed by the reporting UI layer. Reports never throw
// on unbalanced books; they return figures plus integrity flags.
type ReportingService interface {
	GenerateBalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)
	GenerateIncomeStatement(ctx context.Context, companyID string, startDate, endDate time.Time) (*domain.IncomeStatementReport, error)
	GenerateCashFlowStatement(ctx context.Context, companyID string, startDate, endDate time.Time) (*domain.CashFlowReport, error)
	GenerateTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error)
	GenerateARAgingReport(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingReport, error)
	GenerateAPAgingReport(ctx context.Context, companyID string, asOf time.Time) (*domain.AgingReport, error)
}

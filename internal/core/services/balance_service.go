package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService computes point-in-time balances by aggregating ledger rows.
// Balances are always recomputed from the append-only ledger; there is no
// invalidation-prone cache to drift from history.
type balanceService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new BalanceSvcFacade implementation.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, reportingRepo portsrepo.ReportingRepository) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetAccountBalance sums debit/credit movements with transactionDate <= asOf,
// oriented to the account's normal balance.
func (s *balanceService) GetAccountBalance(ctx context.Context, companyID, accountID string, asOf time.Time) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	debit, credit, err := s.ledgerRepo.SumAccountMovements(ctx, companyID, accountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger movements for account %s: %w", accountID, err)
	}

	return &domain.AccountBalance{
		AccountID: accountID,
		Balance:   accounting.Orient(debit, credit, account.NormalBalance),
		AsOf:      asOf,
	}, nil
}

// GetTrialBalance lists every account's balance as of asOf, split into debit
// and credit columns. Unequal totals are a data-integrity fault surfaced via
// the Balanced flag; the figures are never silently corrected.
func (s *balanceService) GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountBalancesAsOf(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(activities)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, a := range activities {
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
		}
		// A net debit position lands in the debit column, a net credit
		// position in the credit column.
		net := a.Debit.Sub(a.Credit)
		if net.IsNegative() {
			row.Credit = net.Neg()
		} else {
			row.Debit = net
		}
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	report.Balanced = report.TotalDebit.Sub(report.TotalCredit).Abs().LessThan(domain.BalanceTolerance)
	if !report.Balanced {
		logger.Warn("Trial balance columns are unequal",
			slog.String("company_id", companyID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}

	return report, nil
}

// GetAccountLedger returns an account's ledger rows in insertion order.
func (s *balanceService) GetAccountLedger(ctx context.Context, companyID, accountID string) ([]domain.LedgerRecord, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindRecordsByAccount(ctx, companyID, accountID)
}

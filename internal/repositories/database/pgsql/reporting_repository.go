package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) queryActivity(ctx context.Context, query string, args ...interface{}) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(
			&a.AccountID,
			&a.AccountCode,
			&a.AccountName,
			&a.AccountType,
			&a.SubType,
			&a.NormalBalance,
			&a.Debit,
			&a.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}

// GetAccountBalancesAsOf aggregates per-account debit/credit sums over all
// ledger rows dated at or before asOf. Active accounts with no activity come
// back with zero sums so reports can show a complete chart.
func (r *reportingRepository) GetAccountBalancesAsOf(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id,
			a.account_code,
			a.account_name,
			a.account_type,
			a.sub_type,
			a.normal_balance,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN ledger_records l
			ON l.account_id = a.account_id
			AND l.company_id = a.company_id
			AND l.transaction_date <= $2
		WHERE a.company_id = $1
			AND (a.is_active = TRUE OR l.record_id IS NOT NULL)
		GROUP BY a.account_id, a.account_code, a.account_name, a.account_type, a.sub_type, a.normal_balance
		ORDER BY a.account_code;
	`
	return r.queryActivity(ctx, query, companyID, asOf)
}

// GetAccountActivity aggregates per-account debit/credit sums over ledger
// rows dated inside [from, to]. Only accounts with in-period activity appear.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id,
			a.account_code,
			a.account_name,
			a.account_type,
			a.sub_type,
			a.normal_balance,
			SUM(l.debit) AS total_debit,
			SUM(l.credit) AS total_credit
		FROM ledger_records l
		JOIN accounts a
			ON a.account_id = l.account_id
			AND a.company_id = l.company_id
		WHERE l.company_id = $1
			AND l.transaction_date BETWEEN $2 AND $3
		GROUP BY a.account_id, a.account_code, a.account_name, a.account_type, a.sub_type, a.normal_balance
		ORDER BY a.account_code;
	`
	return r.queryActivity(ctx, query, companyID, from, to)
}

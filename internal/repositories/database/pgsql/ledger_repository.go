package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository reads the append-only ledger. All writes flow through
// the journal repository's posting units.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `
	record_id, company_id, account_id, entry_id, entry_number, transaction_date,
	debit, credit, running_balance, created_at
`

func (r *PgxLedgerRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger records", err)
	}
	defer rows.Close()

	records := []domain.LedgerRecord{}
	for rows.Next() {
		var rec domain.LedgerRecord
		if err := rows.Scan(
			&rec.RecordID,
			&rec.CompanyID,
			&rec.AccountID,
			&rec.EntryID,
			&rec.EntryNumber,
			&rec.TransactionDate,
			&rec.Debit,
			&rec.Credit,
			&rec.RunningBalance,
			&rec.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger record row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger record rows", err)
	}
	return records, nil
}

// FindRecordsByEntryID retrieves the rows emitted for an entry, reversal rows
// included, in insertion order.
func (r *PgxLedgerRepository) FindRecordsByEntryID(ctx context.Context, companyID, entryID string) ([]domain.LedgerRecord, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_records
		WHERE company_id = $1 AND entry_id = $2
		ORDER BY ledger_seq;
	`
	return r.queryRecords(ctx, query, companyID, entryID)
}

// FindRecordsByAccount retrieves an account's rows in insertion order, which
// is the order running balances continue in.
func (r *PgxLedgerRepository) FindRecordsByAccount(ctx context.Context, companyID, accountID string) ([]domain.LedgerRecord, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_records
		WHERE company_id = $1 AND account_id = $2
		ORDER BY ledger_seq;
	`
	return r.queryRecords(ctx, query, companyID, accountID)
}

// SumAccountMovements sums debit and credit movements over rows dated at or
// before asOf.
func (r *PgxLedgerRepository) SumAccountMovements(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_records
		WHERE company_id = $1 AND account_id = $2 AND transaction_date <= $3;
	`
	var debit, credit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, companyID, accountID, asOf).Scan(&debit, &credit)
	if err != nil && err != pgx.ErrNoRows {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum movements for account "+accountID, err)
	}
	return debit, credit, nil
}

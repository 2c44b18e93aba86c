package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and
// ledger data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, company_id, entry_number, entry_date, reference_number, description,
	entry_type, status, total_debit, total_credit,
	posted_by, posted_at, voided_by, voided_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var postedBy, voidedBy sql.NullString
	err := row.Scan(
		&e.EntryID,
		&e.CompanyID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.ReferenceNumber,
		&e.Description,
		&e.EntryType,
		&e.Status,
		&e.TotalDebit,
		&e.TotalCredit,
		&postedBy,
		&e.PostedAt,
		&voidedBy,
		&e.VoidedAt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.PostedBy = postedBy.String
	e.VoidedBy = voidedBy.String
	return &e, nil
}

// nextEntryNumber atomically increments the per-(company, year) sequence and
// returns the claimed value. Runs inside the caller's transaction so an
// aborted save does not burn a number silently mid-flight.
func nextEntryNumber(ctx context.Context, tx pgx.Tx, companyID string, year int) (string, error) {
	query := `
		INSERT INTO entry_number_sequences (company_id, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_value = entry_number_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, companyID, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to claim entry number for company %s year %d: %w", companyID, year, err)
	}
	return domain.FormatEntryNumber(year, seq), nil
}

func insertLines(batch *pgx.Batch, entry domain.JournalEntry) {
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, account_code, account_name, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			line.AccountCode,
			line.AccountName,
			line.Debit,
			line.Credit,
			line.Description,
		)
	}
}

// SaveEntry persists a new Draft entry with its lines, assigning the next
// sequential entry number for the (company, year) pair. The number is written
// back onto the entry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	entryNumber, err := nextEntryNumber(ctx, tx, entry.CompanyID, entry.EntryDate.Year())
	if err != nil {
		return err
	}
	entry.EntryNumber = entryNumber

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.CompanyID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.ReferenceNumber,
		entry.Description,
		entry.EntryType,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		nullable(entry.PostedBy),
		entry.PostedAt,
		nullable(entry.VoidedBy),
		entry.VoidedAt,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	insertLines(batch, *entry)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND entry_id = $2;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = linesByEntry[entryID]
	return entry, nil
}

// ListEntries retrieves entries matching the optional filters, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1
	`
	args := []interface{}{companyID}

	if params.Status != nil {
		args = append(args, *params.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if params.EntryType != nil {
		args = append(args, *params.EntryType)
		query += fmt.Sprintf(" AND entry_type = $%d", len(args))
	}
	if params.StartDate != nil {
		args = append(args, *params.StartDate)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if params.EndDate != nil {
		args = append(args, *params.EndDate)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY entry_date DESC, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, *entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	for _, id := range entryIDs {
		result[id] = []domain.JournalLine{}
	}
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT line_id, entry_id, account_id, account_code, account_name, debit, credit, description
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.AccountName,
			&l.Debit,
			&l.Credit,
			&l.Description,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		result[l.EntryID] = append(result[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return result, nil
}

// UpdateEntry replaces a Draft entry's header fields and lines.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE journal_entries
		SET entry_date = $3,
		    reference_number = $4,
		    description = $5,
		    entry_type = $6,
		    total_debit = $7,
		    total_credit = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE company_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		entry.CompanyID,
		entry.EntryID,
		entry.EntryDate,
		entry.ReferenceNumber,
		entry.Description,
		entry.EntryType,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s is not an editable draft: %w", entry.EntryID, apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for entry "+entry.EntryID, err)
	}
	batch := &pgx.Batch{}
	insertLines(batch, entry)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry hard-deletes a Draft entry and its lines. Drafts have no ledger
// rows, so nothing else references them.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, companyID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM journal_entries WHERE company_id = $1 AND entry_id = $2 AND status = 'DRAFT';`,
		companyID, entryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s is not a deletable draft: %w", entryID, apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkPosted appends ledger rows for the entry and flips it Draft -> Posted,
// all in one transaction.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entry domain.JournalEntry, records []domain.LedgerRecord) error {
	statusUpdate := `
		UPDATE journal_entries
		SET status = $3, posted_by = $4, posted_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE company_id = $1 AND entry_id = $2;
	`
	return r.appendRecords(ctx, entry, records, domain.Draft, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, statusUpdate,
			entry.CompanyID, entry.EntryID, domain.Posted, entry.PostedBy, entry.PostedAt)
		return err
	})
}

// MarkVoided appends reversal rows and flips the entry Posted -> Void. The
// original ledger rows are untouched.
func (r *PgxJournalRepository) MarkVoided(ctx context.Context, entry domain.JournalEntry, reversals []domain.LedgerRecord) error {
	statusUpdate := `
		UPDATE journal_entries
		SET status = $3, voided_by = $4, voided_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE company_id = $1 AND entry_id = $2;
	`
	return r.appendRecords(ctx, entry, reversals, domain.Posted, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, statusUpdate,
			entry.CompanyID, entry.EntryID, domain.Void, entry.VoidedBy, entry.VoidedAt)
		return err
	})
}

// appendRecords is the shared transactional unit behind posting and voiding:
// lock the entry row and verify its status, lock the touched accounts and the
// tail of each account's ledger, continue running balances in insertion
// order, batch-insert the new rows and flip the status. Everything commits or
// nothing does.
func (r *PgxJournalRepository) appendRecords(ctx context.Context, entry domain.JournalEntry, records []domain.LedgerRecord, expectStatus domain.EntryStatus, flipStatus func(pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	var currentStatus domain.EntryStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM journal_entries WHERE company_id = $1 AND entry_id = $2 FOR UPDATE;`,
		entry.CompanyID, entry.EntryID,
	).Scan(&currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal entry "+entry.EntryID, err)
	}
	if currentStatus != expectStatus {
		return fmt.Errorf("entry %s is %s, expected %s: %w", entry.EntryID, currentStatus, expectStatus, apperrors.ErrConflict)
	}

	accountIDs := uniqueAccountIDs(records)

	// Lock account rows in a stable order so concurrent postings to
	// overlapping accounts serialize instead of deadlocking. Accounts with no
	// ledger rows yet have no tail row to lock, so this is the real gate.
	normals, err := lockAccountNormals(ctx, tx, entry.CompanyID, accountIDs)
	if err != nil {
		return err
	}
	for _, id := range accountIDs {
		if _, ok := normals[id]; !ok {
			return fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}

	priors := make(map[string]decimal.Decimal, len(accountIDs))
	for _, id := range accountIDs {
		var prior decimal.Decimal
		err := tx.QueryRow(ctx, `
			SELECT running_balance
			FROM ledger_records
			WHERE company_id = $1 AND account_id = $2
			ORDER BY ledger_seq DESC
			LIMIT 1
			FOR UPDATE;
		`, entry.CompanyID, id).Scan(&prior)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(500, "failed to read running balance for account "+id, err)
		}
		priors[id] = prior
	}

	if err := accounting.ApplyRunningBalances(records, normals, priors); err != nil {
		return apperrors.NewAppError(500, "failed to compute running balances for entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	recordQuery := `
		INSERT INTO ledger_records (record_id, company_id, account_id, entry_id, entry_number, transaction_date, debit, credit, running_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, rec := range records {
		batch.Queue(recordQuery,
			rec.RecordID,
			rec.CompanyID,
			rec.AccountID,
			rec.EntryID,
			rec.EntryNumber,
			rec.TransactionDate,
			rec.Debit,
			rec.Credit,
			rec.RunningBalance,
			rec.CreatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger records for entry "+entry.EntryID, err)
	}

	if err := flipStatus(tx); err != nil {
		return apperrors.NewAppError(500, "failed to update status for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func uniqueAccountIDs(records []domain.LedgerRecord) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.AccountID]; !ok {
			seen[rec.AccountID] = struct{}{}
			ids = append(ids, rec.AccountID)
		}
	}
	return ids
}

func lockAccountNormals(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.BalanceDirection, error) {
	rows, err := tx.Query(ctx, `
		SELECT account_id, normal_balance
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;
	`, companyID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for posting", err)
	}
	defer rows.Close()

	normals := make(map[string]domain.BalanceDirection, len(accountIDs))
	for rows.Next() {
		var id string
		var normal domain.BalanceDirection
		if err := rows.Scan(&id, &normal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account lock row", err)
		}
		normals[id] = normal
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account lock rows", err)
	}
	return normals, nil
}

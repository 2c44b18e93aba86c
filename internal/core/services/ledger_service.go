package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
)

// ledgerPoster converts posted/voided entries into immutable ledger rows.
// Record construction is pure; running-balance continuation and the status
// flip happen inside the repository transaction so concurrent postings
// serialize per account and a partial failure leaves no orphan rows.
type ledgerPoster struct {
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewLedgerPoster creates a new LedgerPosterSvc implementation.
func NewLedgerPoster(journalRepo portsrepo.JournalRepositoryFacade) portssvc.LedgerPosterSvc {
	return &ledgerPoster{journalRepo: journalRepo}
}

var _ portssvc.LedgerPosterSvc = (*ledgerPoster)(nil)

// BuildPostingRecords constructs one ledger record per entry line, in line
// order. RunningBalance is left zero; it is computed from the latest prior
// balance at insertion time.
func BuildPostingRecords(entry domain.JournalEntry, now time.Time) []domain.LedgerRecord {
	records := make([]domain.LedgerRecord, len(entry.Lines))
	for i, line := range entry.Lines {
		records[i] = domain.LedgerRecord{
			RecordID:        uuid.NewString(),
			CompanyID:       entry.CompanyID,
			AccountID:       line.AccountID,
			EntryID:         entry.EntryID,
			EntryNumber:     entry.EntryNumber,
			TransactionDate: entry.EntryDate,
			Debit:           line.Debit,
			Credit:          line.Credit,
			CreatedAt:       now,
		}
	}
	return records
}

// BuildReversalRecords constructs the reversal rows for a void: one row per
// original line with debit and credit swapped and a VOID-tagged entry number,
// so aggregating all rows for an account nets the entry's effect to zero.
func BuildReversalRecords(entry domain.JournalEntry, now time.Time) []domain.LedgerRecord {
	reversals := make([]domain.LedgerRecord, len(entry.Lines))
	for i, line := range entry.Lines {
		reversals[i] = domain.LedgerRecord{
			RecordID:        uuid.NewString(),
			CompanyID:       entry.CompanyID,
			AccountID:       line.AccountID,
			EntryID:         entry.EntryID,
			EntryNumber:     domain.VoidEntryNumber(entry.EntryNumber),
			TransactionDate: entry.EntryDate,
			Debit:           line.Credit,
			Credit:          line.Debit,
			CreatedAt:       now,
		}
	}
	return reversals
}

// PostEntry emits one ledger record per line and flips the entry to Posted.
func (p *ledgerPoster) PostEntry(ctx context.Context, entry domain.JournalEntry) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	records := BuildPostingRecords(entry, time.Now().UTC())
	if err := p.journalRepo.MarkPosted(ctx, entry, records); err != nil {
		return fmt.Errorf("failed to emit ledger records for entry %s: %w", entry.EntryID, err)
	}

	logger.Debug("Ledger records emitted", slog.String("entry_id", entry.EntryID), slog.Int("record_count", len(records)))
	return nil
}

// VoidEntry emits reversal records and flips the entry to Void. The original
// rows stay untouched; the ledger only ever grows.
func (p *ledgerPoster) VoidEntry(ctx context.Context, entry domain.JournalEntry) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	reversals := BuildReversalRecords(entry, time.Now().UTC())
	if err := p.journalRepo.MarkVoided(ctx, entry, reversals); err != nil {
		return fmt.Errorf("failed to emit reversal records for entry %s: %w", entry.EntryID, err)
	}

	logger.Debug("Reversal records emitted", slog.String("entry_id", entry.EntryID), slog.Int("record_count", len(reversals)))
	return nil
}

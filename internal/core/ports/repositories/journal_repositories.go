package repositories

import (
	"context"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries matching the optional filters, newest first.
	ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations driving the Draft lifecycle.
type JournalEntryWriter interface {
	// SaveEntry persists a new Draft entry with its lines, assigning the next
	// sequential entry number for (company, year) atomically. The assigned
	// number is written back onto the entry.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error

	// UpdateEntry replaces a Draft entry's header fields and lines.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry hard-deletes a Draft entry. Safe because no ledger rows
	// exist for drafts.
	DeleteEntry(ctx context.Context, companyID, entryID string) error
}

// JournalEntryPoster defines the transactional posting/voiding units. Each
// call is atomic: status check, ledger-row emission with running-balance
// continuation, and the status flip either all commit or all roll back, so a
// partial failure leaves the entry in its prior state with no orphan rows.
type JournalEntryPoster interface {
	// MarkPosted appends the given ledger records (running balances computed
	// inside the transaction) and flips the entry Draft -> Posted.
	MarkPosted(ctx context.Context, entry domain.JournalEntry, records []domain.LedgerRecord) error

	// MarkVoided appends reversal records and flips the entry Posted -> Void.
	// Original rows are untouched.
	MarkVoided(ctx context.Context, entry domain.JournalEntry, reversals []domain.LedgerRecord) error
}

// JournalRepositoryFacade combines all journal-entry repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalEntryPoster
}

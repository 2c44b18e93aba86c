package services

import (
	"context"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries matching the optional filters. A date
	// range filter requires both bounds.
	ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error)
}

// JournalWriterSvc drives the Draft -> Posted -> Void lifecycle.
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new Draft entry with the next
	// sequential entry number for (company, year).
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry patches a Draft entry; replacing lines re-runs validation.
	UpdateEntry(ctx context.Context, companyID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry transitions Draft -> Posted, emitting ledger rows. The only
	// path that creates ledger rows for an entry.
	PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// VoidEntry transitions Posted -> Void, emitting reversal rows.
	VoidEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// DeleteEntry hard-deletes a Draft entry.
	DeleteEntry(ctx context.Context, companyID, entryID, userID string) error

	// CreateAndPost is the collaborator hook for document subsystems: it
	// creates a Draft from the request and immediately posts it, returning
	// the posted entry so the caller can store the id/entryNumber
	// cross-reference.
	CreateAndPost(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal entry service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// LedgerPosterSvc converts posted/voided entries into immutable ledger rows.
// Running-balance continuation happens inside the repository transaction so
// concurrent postings serialize per account.
type LedgerPosterSvc interface {
	// PostEntry emits one ledger record per line and flips the entry to Posted.
	PostEntry(ctx context.Context, entry domain.JournalEntry) error

	// VoidEntry emits one reversal record per original line (debit/credit
	// swapped, VOID-tagged entry number) and flips the entry to Void.
	VoidEntry(ctx context.Context, entry domain.JournalEntry) error
}

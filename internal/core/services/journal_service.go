package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/utils/accounting"
)

var (
	ErrEntryDateRequired  = fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	ErrLinesRequired      = fmt.Errorf("%w: entry must have at least one line", apperrors.ErrValidation)
	ErrEntryNotBalanced   = fmt.Errorf("%w: entry not balanced", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrOnlyDraftEditable  = fmt.Errorf("%w: only draft entries can be updated", apperrors.ErrConflict)
	ErrOnlyDraftPostable  = fmt.Errorf("%w: only draft entries can be posted", apperrors.ErrConflict)
	ErrOnlyPostedVoidable = fmt.Errorf("%w: only posted entries can be voided", apperrors.ErrConflict)
	ErrOnlyDraftDeletable = fmt.Errorf("%w: only draft entries can be deleted", apperrors.ErrConflict)
	ErrDateRangeBounds    = fmt.Errorf("%w: a date range query requires both startDate and endDate", apperrors.ErrValidation)
)

// journalService drives the Draft -> Posted -> Void lifecycle of journal
// entries. Ledger rows are emitted exclusively through the poster.
type journalService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
	poster      portssvc.LedgerPosterSvc
}

// NewJournalService creates a new JournalSvcFacade implementation.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, poster portssvc.LedgerPosterSvc) portssvc.JournalSvcFacade {
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
		poster:      poster,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// resolveLines validates line amounts and balance, resolves every account
// against the registry, and returns the lines with denormalized account
// code/name snapshots applied.
func (s *journalService) resolveLines(ctx context.Context, companyID string, reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	if len(reqLines) == 0 {
		return nil, ErrLinesRequired
	}

	lines := make([]domain.JournalLine, len(reqLines))
	accountIDs := make([]string, 0, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
		}
		accountIDs = append(accountIDs, lr.AccountID)
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := accounting.CheckBalanced(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryNotBalanced, err)
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, companyID, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for i := range lines {
		acc, found := accountsMap[lines[i].AccountID]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, lines[i].AccountID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.AccountCode)
		}
		// Snapshot the account identity; preserved even if the account is
		// later renamed.
		lines[i].AccountCode = acc.AccountCode
		lines[i].AccountName = acc.AccountName
	}

	return lines, nil
}

// CreateEntry validates and persists a new Draft entry. The sequential entry
// number for (company, entry year) is assigned atomically by the repository.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EntryDate.IsZero() {
		return nil, ErrEntryDateRequired
	}

	lines, err := s.resolveLines(ctx, companyID, req.Lines)
	if err != nil {
		return nil, err
	}

	entryType := domain.EntryType(req.EntryType)
	if entryType == "" {
		entryType = domain.Manual
	}

	now := time.Now().UTC()
	totalDebit, totalCredit := accounting.EntryTotals(lines)
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		EntryDate:       req.EntryDate,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		EntryType:       entryType,
		Status:          domain.Draft,
		Lines:           lines,
		TotalDebit:      totalDebit,
		TotalCredit:     totalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for i := range entry.Lines {
		entry.Lines[i].EntryID = entry.EntryID
	}

	if err := s.journalRepo.SaveEntry(ctx, &entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// UpdateEntry patches a Draft entry. Replacing lines re-runs the full balance
// and account-resolution validation from CreateEntry.
func (s *journalService) UpdateEntry(ctx context.Context, companyID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, ErrOnlyDraftEditable
	}

	updated := false
	if req.EntryDate != nil {
		if req.EntryDate.IsZero() {
			return nil, ErrEntryDateRequired
		}
		entry.EntryDate = *req.EntryDate
		updated = true
	}
	if req.ReferenceNumber != nil {
		entry.ReferenceNumber = *req.ReferenceNumber
		updated = true
	}
	if req.Description != nil {
		entry.Description = *req.Description
		updated = true
	}
	if req.Lines != nil {
		lines, err := s.resolveLines(ctx, companyID, *req.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].EntryID = entry.EntryID
		}
		entry.Lines = lines
		entry.TotalDebit, entry.TotalCredit = accounting.EntryTotals(lines)
		updated = true
	}

	if !updated {
		return entry, nil
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// PostEntry transitions Draft -> Posted. Delegates to the ledger poster, the
// only path that creates ledger rows for an entry. The emission and status
// flip are one transactional unit; on failure the entry stays Draft.
func (s *journalService) PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, ErrOnlyDraftPostable
	}

	now := time.Now().UTC()
	entry.Status = domain.Posted
	entry.PostedBy = userID
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.poster.PostEntry(ctx, *entry); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// VoidEntry transitions Posted -> Void by emitting reversal rows. Original
// ledger rows are untouched; entries are never resurrected from Void.
func (s *journalService) VoidEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, ErrOnlyPostedVoidable
	}

	now := time.Now().UTC()
	entry.Status = domain.Void
	entry.VoidedBy = userID
	entry.VoidedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.poster.VoidEntry(ctx, *entry); err != nil {
		logger.Error("Failed to void journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to void journal entry: %w", err)
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// DeleteEntry hard-deletes a Draft entry. Safe because drafts have no ledger rows.
func (s *journalService) DeleteEntry(ctx context.Context, companyID, entryID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return ErrOnlyDraftDeletable
	}

	if err := s.journalRepo.DeleteEntry(ctx, companyID, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Draft journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, companyID, entryID)
}

// ListEntries retrieves entries matching the optional filters. A date range
// filter requires both bounds.
func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	if (params.StartDate == nil) != (params.EndDate == nil) {
		return nil, ErrDateRangeBounds
	}
	return s.journalRepo.ListEntries(ctx, companyID, params)
}

// CreateAndPost is the collaborator hook for document subsystems: invoice and
// bill services call it on their own status transitions and store the
// returned id/entryNumber as a cross-reference.
func (s *journalService) CreateAndPost(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.CreateEntry(ctx, companyID, req, userID)
	if err != nil {
		return nil, err
	}
	return s.PostEntry(ctx, companyID, entry.EntryID, userID)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

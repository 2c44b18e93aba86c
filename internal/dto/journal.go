package dto

import (
	"time"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit movement in a create/update request.
// Canonically one of Debit/Credit is zero.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the payload to create a Draft entry.
type CreateJournalEntryRequest struct {
	EntryDate       time.Time            `json:"entryDate" binding:"required"`
	ReferenceNumber string               `json:"referenceNumber"`
	Description     string               `json:"description"`
	EntryType       string               `json:"entryType" binding:"omitempty,oneof=MANUAL INVOICE_CREATED PAYMENT_RECEIVED BILL_CREATED PAYMENT_MADE ADJUSTMENT"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest patches a Draft entry. Replacing lines re-runs the
// full balance and account-resolution validation.
type UpdateJournalEntryRequest struct {
	EntryDate       *time.Time            `json:"entryDate,omitempty"`
	ReferenceNumber *string               `json:"referenceNumber,omitempty"`
	Description     *string               `json:"description,omitempty"`
	Lines           *[]JournalLineRequest `json:"lines,omitempty" binding:"omitempty,min=1,dive"`
}

// JournalLineResponse mirrors a persisted line including the denormalized
// account snapshot.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	EntryNumber     string                `json:"entryNumber"`
	EntryDate       time.Time             `json:"entryDate"`
	ReferenceNumber string                `json:"referenceNumber"`
	Description     string                `json:"description"`
	EntryType       string                `json:"entryType"`
	Status          string                `json:"status"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	TotalDebit      decimal.Decimal       `json:"totalDebit"`
	TotalCredit     decimal.Decimal       `json:"totalCredit"`
	PostedBy        string                `json:"postedBy,omitempty"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	VoidedBy        string                `json:"voidedBy,omitempty"`
	VoidedAt        *time.Time            `json:"voidedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a filtered entry list.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		EntryType:       string(e.EntryType),
		Status:          string(e.Status),
		Lines:           lines,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		PostedBy:        e.PostedBy,
		PostedAt:        e.PostedAt,
		VoidedBy:        e.VoidedBy,
		VoidedAt:        e.VoidedAt,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// ListJournalEntriesParams carries the optional query filters for listing.
type ListJournalEntriesParams struct {
	Status    *domain.EntryStatus
	EntryType *domain.EntryType
	StartDate *time.Time
	EndDate   *time.Time
}

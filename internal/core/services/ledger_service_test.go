package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/services"
)

func postedFixtureEntry() domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   uuid.NewString(),
		EntryNumber: "JE-2024-042",
		EntryDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), AccountID: "acc-cash", Debit: decimal.RequireFromString("250.00"), Credit: decimal.Zero},
			{LineID: uuid.NewString(), AccountID: "acc-revenue", Debit: decimal.Zero, Credit: decimal.RequireFromString("250.00")},
		},
	}
}

func TestBuildPostingRecords(t *testing.T) {
	entry := postedFixtureEntry()
	now := time.Now().UTC()

	records := services.BuildPostingRecords(entry, now)

	require.Len(t, records, 2)
	for i, r := range records {
		assert.NotEmpty(t, r.RecordID)
		assert.Equal(t, entry.CompanyID, r.CompanyID)
		assert.Equal(t, entry.EntryID, r.EntryID)
		assert.Equal(t, entry.EntryNumber, r.EntryNumber)
		assert.Equal(t, entry.EntryDate, r.TransactionDate)
		assert.Equal(t, entry.Lines[i].AccountID, r.AccountID)
		assert.True(t, entry.Lines[i].Debit.Equal(r.Debit))
		assert.True(t, entry.Lines[i].Credit.Equal(r.Credit))
		// Running balances are stamped inside the repository transaction.
		assert.True(t, r.RunningBalance.IsZero())
		assert.Equal(t, now, r.CreatedAt)
	}
}

func TestBuildReversalRecords(t *testing.T) {
	entry := postedFixtureEntry()
	now := time.Now().UTC()

	reversals := services.BuildReversalRecords(entry, now)

	require.Len(t, reversals, 2)
	for i, r := range reversals {
		assert.Equal(t, "JE-2024-042-VOID", r.EntryNumber)
		assert.True(t, entry.Lines[i].Credit.Equal(r.Debit), "debit and credit must be swapped")
		assert.True(t, entry.Lines[i].Debit.Equal(r.Credit), "debit and credit must be swapped")
		assert.Equal(t, entry.EntryID, r.EntryID, "reversal rows reference the original entry")
	}
}

func TestReversalNetsToZero(t *testing.T) {
	entry := postedFixtureEntry()
	now := time.Now().UTC()

	records := services.BuildPostingRecords(entry, now)
	reversals := services.BuildReversalRecords(entry, now)

	normals := map[string]domain.BalanceDirection{
		"acc-cash":    domain.DebitBalance,
		"acc-revenue": domain.CreditBalance,
	}
	for accountID, normal := range normals {
		net := decimal.Zero
		for _, r := range append(records, reversals...) {
			if r.AccountID == accountID {
				net = net.Add(r.SignedMovement(normal))
			}
		}
		assert.True(t, net.IsZero(), "account %s should net to zero after void", accountID)
	}
}

func TestLedgerPoster_PostEntry(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	poster := services.NewLedgerPoster(mockRepo)
	entry := postedFixtureEntry()

	mockRepo.On("MarkPosted", mock.Anything, entry, mock.MatchedBy(func(records []domain.LedgerRecord) bool {
		return len(records) == len(entry.Lines) && records[0].EntryNumber == entry.EntryNumber
	})).Return(nil).Once()

	err := poster.PostEntry(context.Background(), entry)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestLedgerPoster_VoidEntry(t *testing.T) {
	mockRepo := new(MockJournalRepository)
	poster := services.NewLedgerPoster(mockRepo)
	entry := postedFixtureEntry()
	entry.Status = domain.Void

	mockRepo.On("MarkVoided", mock.Anything, entry, mock.MatchedBy(func(reversals []domain.LedgerRecord) bool {
		return len(reversals) == len(entry.Lines) && reversals[0].EntryNumber == "JE-2024-042-VOID"
	})).Return(nil).Once()

	err := poster.VoidEntry(context.Background(), entry)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

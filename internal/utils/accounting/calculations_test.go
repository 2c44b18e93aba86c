package accounting_test

import (
	"testing"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrient(t *testing.T) {
	t.Run("DebitNormalAccount", func(t *testing.T) {
		assert.True(t, dec("100").Equal(accounting.Orient(dec("100"), dec("0"), domain.DebitBalance)))
		assert.True(t, dec("-100").Equal(accounting.Orient(dec("0"), dec("100"), domain.DebitBalance)))
	})

	t.Run("CreditNormalAccount", func(t *testing.T) {
		assert.True(t, dec("100").Equal(accounting.Orient(dec("0"), dec("100"), domain.CreditBalance)))
		assert.True(t, dec("-100").Equal(accounting.Orient(dec("100"), dec("0"), domain.CreditBalance)))
	})
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: dec("150.25"), Credit: decimal.Zero},
		{Debit: dec("49.75"), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: dec("200.00")},
	}

	debit, credit := accounting.EntryTotals(lines)
	assert.True(t, dec("200.00").Equal(debit))
	assert.True(t, dec("200.00").Equal(credit))
}

func TestValidateLines(t *testing.T) {
	t.Run("ValidLines", func(t *testing.T) {
		err := accounting.ValidateLines([]domain.JournalLine{
			{Debit: dec("10"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: dec("10")},
		})
		assert.NoError(t, err)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		err := accounting.ValidateLines([]domain.JournalLine{
			{Debit: dec("-5"), Credit: decimal.Zero},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
		assert.Contains(t, err.Error(), "non-negative")
	})

	t.Run("EmptyLine", func(t *testing.T) {
		err := accounting.ValidateLines([]domain.JournalLine{
			{Debit: dec("10"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: decimal.Zero},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestCheckBalanced(t *testing.T) {
	t.Run("ExactlyBalanced", func(t *testing.T) {
		err := accounting.CheckBalanced([]domain.JournalLine{
			{Debit: dec("100"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: dec("100")},
		})
		assert.NoError(t, err)
	})

	t.Run("WithinTolerance", func(t *testing.T) {
		// 0.009 off is still under the 0.01 tolerance.
		err := accounting.CheckBalanced([]domain.JournalLine{
			{Debit: dec("100.009"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: dec("100")},
		})
		assert.NoError(t, err)
	})

	t.Run("AtTolerance", func(t *testing.T) {
		// Exactly 0.01 off is out of balance.
		err := accounting.CheckBalanced([]domain.JournalLine{
			{Debit: dec("100.01"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: dec("100")},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not balanced")
	})

	t.Run("CreditHeavy", func(t *testing.T) {
		err := accounting.CheckBalanced([]domain.JournalLine{
			{Debit: dec("50"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: dec("75")},
		})
		require.Error(t, err)
	})
}

func TestApplyRunningBalances(t *testing.T) {
	const cash = "acc-cash"
	const revenue = "acc-revenue"

	normals := map[string]domain.BalanceDirection{
		cash:    domain.DebitBalance,
		revenue: domain.CreditBalance,
	}

	t.Run("FoldsFromPriors", func(t *testing.T) {
		records := []domain.LedgerRecord{
			{AccountID: cash, Debit: dec("500"), Credit: decimal.Zero},
			{AccountID: revenue, Debit: decimal.Zero, Credit: dec("500")},
			{AccountID: cash, Debit: decimal.Zero, Credit: dec("200")},
		}
		priors := map[string]decimal.Decimal{
			cash: dec("1000"),
		}

		err := accounting.ApplyRunningBalances(records, normals, priors)
		require.NoError(t, err)

		assert.True(t, dec("1500").Equal(records[0].RunningBalance))
		assert.True(t, dec("500").Equal(records[1].RunningBalance))
		assert.True(t, dec("1300").Equal(records[2].RunningBalance))

		// Priors map now holds the post-fold balances.
		assert.True(t, dec("1300").Equal(priors[cash]))
		assert.True(t, dec("500").Equal(priors[revenue]))
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		records := []domain.LedgerRecord{
			{AccountID: "acc-missing", Debit: dec("10"), Credit: decimal.Zero},
		}

		err := accounting.ApplyRunningBalances(records, normals, map[string]decimal.Decimal{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "acc-missing")
	})
}

package accounting

import (
	"fmt"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Orient converts a raw debit/credit pair into a signed movement relative to
// the account's normal balance: aligned movements are positive, opposed
// movements negative. Used by the ledger poster and every report so the sign
// convention lives in exactly one place.
func Orient(debit, credit decimal.Decimal, normal domain.BalanceDirection) decimal.Decimal {
	if normal == domain.DebitBalance {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// EntryTotals sums the debit and credit columns over a set of lines.
func EntryTotals(lines []domain.JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// ValidateLines checks the per-line amount rules: amounts are non-negative and
// each line moves at least one side. Canonically one side is zero; a line with
// both sides set is tolerated as long as the entry still balances.
func ValidateLines(lines []domain.JournalLine) error {
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit must be non-negative", i+1)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return fmt.Errorf("line %d: either debit or credit must be set", i+1)
		}
	}
	return nil
}

// ApplyRunningBalances folds signed movements onto the latest prior balances,
// stamping each record's RunningBalance in order. priors maps accountID to the
// balance before the first record here (zero for untouched accounts); normals
// maps accountID to the account's normal balance. The updated priors map
// reflects the balances after the fold.
func ApplyRunningBalances(records []domain.LedgerRecord, normals map[string]domain.BalanceDirection, priors map[string]decimal.Decimal) error {
	for i := range records {
		normal, ok := normals[records[i].AccountID]
		if !ok {
			return fmt.Errorf("normal balance unknown for account %s", records[i].AccountID)
		}
		next := priors[records[i].AccountID].Add(Orient(records[i].Debit, records[i].Credit, normal))
		records[i].RunningBalance = next
		priors[records[i].AccountID] = next
	}
	return nil
}

// CheckBalanced verifies |totalDebit-totalCredit| stays under the tolerance.
func CheckBalanced(lines []domain.JournalLine) error {
	debit, credit := EntryTotals(lines)
	if debit.Sub(credit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return fmt.Errorf("entry not balanced: total debit %s, total credit %s", debit.String(), credit.String())
	}
	return nil
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
//
// State machine: Draft -post-> Posted -void-> Void; Draft -delete-> (removed).
// No edge leaves Void or re-enters Draft.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// EntryType distinguishes manual entries from entries generated by document
// subsystems reacting to invoice/bill transitions.
type EntryType string

const (
	Manual          EntryType = "MANUAL"
	InvoiceCreated  EntryType = "INVOICE_CREATED"
	PaymentReceived EntryType = "PAYMENT_RECEIVED"
	BillCreated     EntryType = "BILL_CREATED"
	PaymentMade     EntryType = "PAYMENT_MADE"
	Adjustment      EntryType = "ADJUSTMENT"
)

// BalanceTolerance is the maximum allowed |totalDebit - totalCredit| for an
// entry to be considered balanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalEntry represents a single, balanced financial event composed of
// one or more lines. Mutable only while Draft; immutable after Posted except
// for the single Void transition.
type JournalEntry struct {
	EntryID         string        `json:"entryID"`
	CompanyID       string        `json:"companyID"`
	EntryNumber     string        `json:"entryNumber"` // JE-YYYY-NNN, sequential per company per year
	EntryDate       time.Time     `json:"entryDate"`
	ReferenceNumber string        `json:"referenceNumber"`
	Description     string        `json:"description"`
	EntryType       EntryType     `json:"entryType"`
	Status          EntryStatus   `json:"status"`
	Lines           []JournalLine `json:"lines"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	PostedBy        string        `json:"postedBy,omitempty"`
	PostedAt        *time.Time    `json:"postedAt,omitempty"`
	VoidedBy        string        `json:"voidedBy,omitempty"`
	VoidedAt        *time.Time    `json:"voidedAt,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit movement within an entry.
// AccountCode and AccountName are denormalized snapshots taken at creation
// time and preserved even if the account is later renamed.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// Totals sums the debit and credit sides over the entry's lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether total debits equal total credits within tolerance.
func (e JournalEntry) IsBalanced() bool {
	debit, credit := e.Totals()
	return debit.Sub(credit).Abs().LessThan(BalanceTolerance)
}

// FormatEntryNumber renders the sequential entry number for a company year.
func FormatEntryNumber(year int, seq int64) string {
	return fmt.Sprintf("JE-%d-%03d", year, seq)
}

// VoidEntryNumber derives the entry number reversal ledger rows carry.
func VoidEntryNumber(entryNumber string) string {
	return entryNumber + "-VOID"
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes receivable from payable open documents.
type DocumentKind string

const (
	Receivable DocumentKind = "RECEIVABLE" // customer invoices
	Payable    DocumentKind = "PAYABLE"    // supplier bills
)

// Invoice statuses considered open for AR aging.
const (
	InvoiceSent    = "SENT"
	InvoicePartial = "PARTIAL"
)

// Bill statuses considered open for AP aging.
const (
	BillOpen    = "OPEN"
	BillPartial = "PARTIAL"
)

// OpenDocument is the boundary view of an invoice or bill the aging report
// consumes. Invoice/Bill lifecycle management lives in the document services;
// the report engine only sees open documents with an outstanding balance.
type OpenDocument struct {
	DocumentID     string          `json:"documentID"`
	CompanyID      string          `json:"companyID"`
	Kind           DocumentKind    `json:"kind"`
	DocumentNumber string          `json:"documentNumber"`
	PartyID        string          `json:"partyID"` // customer or supplier
	PartyName      string          `json:"partyName"`
	Status         string          `json:"status"`
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        time.Time       `json:"dueDate"`
	Total          decimal.Decimal `json:"total"`
	BalanceDue     decimal.Decimal `json:"balanceDue"`
}

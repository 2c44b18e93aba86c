package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the per-account debit/credit aggregate the report engine
// consumes. Depending on the query it covers all rows up to an as-of date or
// the rows inside a reporting period.
type AccountActivity struct {
	AccountID     string           `json:"accountID"`
	AccountCode   string           `json:"accountCode"`
	AccountName   string           `json:"accountName"`
	AccountType   AccountType      `json:"accountType"`
	SubType       string           `json:"subType"`
	NormalBalance BalanceDirection `json:"normalBalance"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
}

// Balance orients the aggregate to the account's normal balance.
func (a AccountActivity) Balance() decimal.Decimal {
	if a.NormalBalance == DebitBalance {
		return a.Debit.Sub(a.Credit)
	}
	return a.Credit.Sub(a.Debit)
}

// AccountBalance is a point-in-time balance for a single account.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      time.Time       `json:"asOfDate"`
}

// TrialBalanceRow lists one account's balance split into debit/credit columns.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport carries every account's balance as of a date. Unequal
// column totals signal a data-integrity fault to surface, never to correct.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOfDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// BalanceSheetLine is one account's sign-corrected balance on the balance sheet.
type BalanceSheetLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	SubType     string          `json:"subType"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheetGroup groups asset/liability lines by subType classification.
type BalanceSheetGroup struct {
	Label string             `json:"label"` // "Current", "Fixed", "Long-term", "Other"
	Lines []BalanceSheetLine `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

// BalanceSheetReport is the point-in-time statement of financial position.
// CurrentYearNetIncome folds unposted current-period earnings into equity so
// the accounting equation holds before period-close entries exist.
type BalanceSheetReport struct {
	AsOf                 time.Time           `json:"asOfDate"`
	AssetGroups          []BalanceSheetGroup `json:"assetGroups"`
	LiabilityGroups      []BalanceSheetGroup `json:"liabilityGroups"`
	Equity               []BalanceSheetLine  `json:"equity"`
	TotalAssets          decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity          decimal.Decimal     `json:"totalEquity"`
	CurrentYearNetIncome decimal.Decimal     `json:"currentYearNetIncome"`
	Balanced             bool                `json:"balanced"`
}

// IncomeStatementLine is one revenue or expense account's period amount.
type IncomeStatementLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	SubType     string          `json:"subType"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementReport is the period statement of earnings. NetIncome is
// computed over the full unfiltered revenue/expense sets, independent of the
// subType bucketing, so it stays correct when an account matches no bucket.
type IncomeStatementReport struct {
	StartDate            time.Time             `json:"startDate"`
	EndDate              time.Time             `json:"endDate"`
	OperatingRevenue     []IncomeStatementLine `json:"operatingRevenue"`
	ContraRevenue        []IncomeStatementLine `json:"contraRevenue"`
	OtherIncome          []IncomeStatementLine `json:"otherIncome"`
	CostOfSales          []IncomeStatementLine `json:"costOfSales"`
	OperatingExpenses    []IncomeStatementLine `json:"operatingExpenses"`
	NonOperatingExpenses []IncomeStatementLine `json:"nonOperatingExpenses"`
	GrossRevenue         decimal.Decimal       `json:"grossRevenue"`
	NetRevenue           decimal.Decimal       `json:"netRevenue"`
	GrossProfit          decimal.Decimal       `json:"grossProfit"`
	OperatingIncome      decimal.Decimal       `json:"operatingIncome"`
	TotalRevenue         decimal.Decimal       `json:"totalRevenue"`
	TotalExpenses        decimal.Decimal       `json:"totalExpenses"`
	NetIncome            decimal.Decimal       `json:"netIncome"`
}

// CashFlowItem is one labelled amount inside a cash flow section.
type CashFlowItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowReport is the indirect-method statement of cash flows. Beginning
// cash is measured one day before startDate so same-day transactions are
// counted exactly once, in-period.
type CashFlowReport struct {
	StartDate                time.Time       `json:"startDate"`
	EndDate                  time.Time       `json:"endDate"`
	NetIncome                decimal.Decimal `json:"netIncome"`
	DepreciationAmortization decimal.Decimal `json:"depreciationAmortization"`
	WorkingCapitalChanges    []CashFlowItem  `json:"workingCapitalChanges"`
	OperatingCashFlow        decimal.Decimal `json:"operatingCashFlow"`
	InvestingActivities      []CashFlowItem  `json:"investingActivities"`
	InvestingCashFlow        decimal.Decimal `json:"investingCashFlow"`
	FinancingActivities      []CashFlowItem  `json:"financingActivities"`
	FinancingCashFlow        decimal.Decimal `json:"financingCashFlow"`
	NetCashFlow              decimal.Decimal `json:"netCashFlow"`
	BeginningCash            decimal.Decimal `json:"beginningCash"`
	EndingCash               decimal.Decimal `json:"endingCash"`
	CalculatedEndingCash     decimal.Decimal `json:"calculatedEndingCash"`
	Reconciled               bool            `json:"reconciled"`
}

// AgingBucket labels how far past due an open document is.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "Current"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// BucketForDaysOverdue classifies by days past due. Zero or negative means the
// document is not yet due.
func BucketForDaysOverdue(days int) AgingBucket {
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingDocument is one open invoice/bill slotted into an aging bucket.
type AgingDocument struct {
	DocumentID     string          `json:"documentID"`
	DocumentNumber string          `json:"documentNumber"`
	DueDate        time.Time       `json:"dueDate"`
	DaysOverdue    int             `json:"daysOverdue"`
	BalanceDue     decimal.Decimal `json:"balanceDue"`
	Bucket         AgingBucket     `json:"bucket"`
}

// AgingParty accumulates one counterparty's open documents per bucket.
type AgingParty struct {
	PartyID    string          `json:"partyID"`
	PartyName  string          `json:"partyName"`
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days1to30"`
	Days31To60 decimal.Decimal `json:"days31to60"`
	Days61To90 decimal.Decimal `json:"days61to90"`
	Over90     decimal.Decimal `json:"over90"`
	Total      decimal.Decimal `json:"total"`
	Documents  []AgingDocument `json:"documents"`
}

// AgingReport is the AR or AP aging summary as of a date.
type AgingReport struct {
	AsOf          time.Time       `json:"asOfDate"`
	Parties       []AgingParty    `json:"parties"`
	Current       decimal.Decimal `json:"current"`
	Days1To30     decimal.Decimal `json:"days1to30"`
	Days31To60    decimal.Decimal `json:"days31to60"`
	Days61To90    decimal.Decimal `json:"days61to90"`
	Over90        decimal.Decimal `json:"over90"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	DocumentCount int             `json:"documentCount"`
	PartyCount    int             `json:"partyCount"`
}

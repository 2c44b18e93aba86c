package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceDirection is the side of the ledger on which an account's balance
// naturally increases.
type BalanceDirection string

const (
	DebitBalance  BalanceDirection = "DEBIT"
	CreditBalance BalanceDirection = "CREDIT"
)

// ExpectedNormalBalance returns the direction an account of the given type is
// expected to carry. Contra accounts deliberately violate this expectation;
// the mismatch is what the report engine uses for sign correction.
func ExpectedNormalBalance(t AccountType) BalanceDirection {
	switch t {
	case Asset, Expense:
		return DebitBalance
	default:
		return CreditBalance
	}
}

// Account represents one entry in a company's chart of accounts.
// Accounts referenced by ledger rows are never hard-deleted, only deactivated.
type Account struct {
	AccountID     string           `json:"accountID"`
	CompanyID     string           `json:"companyID"`
	AccountCode   string           `json:"accountCode"` // unique per company
	AccountName   string           `json:"accountName"`
	AccountType   AccountType      `json:"accountType"`
	SubType       string           `json:"subType"` // free-text grouping tag ("Current", "Fixed", "Contra Revenue", ...)
	NormalBalance BalanceDirection `json:"normalBalance"`
	Description   string           `json:"description"`
	IsActive      bool             `json:"isActive"`
	AuditFields
}

// IsContra reports whether the account's normal balance opposes the expected
// direction for its type (e.g. Accumulated Depreciation: credit-normal Asset).
func (a Account) IsContra() bool {
	return a.NormalBalance != ExpectedNormalBalance(a.AccountType)
}

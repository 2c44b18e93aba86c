package dto

import (
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
)

// CreateAccountRequest defines the payload to add an account to the chart of
// accounts. NormalBalance may be omitted; it then defaults to the expected
// direction for the account type. Setting it against the expectation creates
// a contra account.
type CreateAccountRequest struct {
	AccountCode   string `json:"accountCode" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	AccountType   string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType       string `json:"subType"`
	NormalBalance string `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"`
	Description   string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string `json:"accountID"`
	AccountCode   string `json:"accountCode"`
	AccountName   string `json:"accountName"`
	AccountType   string `json:"accountType"`
	SubType       string `json:"subType"`
	NormalBalance string `json:"normalBalance"`
	Description   string `json:"description"`
	IsActive      bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		AccountCode:   a.AccountCode,
		AccountName:   a.AccountName,
		AccountType:   string(a.AccountType),
		SubType:       a.SubType,
		NormalBalance: string(a.NormalBalance),
		Description:   a.Description,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

package services

import (
	"context"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
)

// AccountReaderSvc defines read operations for the account registry.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, keyed by ID.
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the company's chart of accounts.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the account registry.
type AccountWriterSvc interface {
	// CreateAccount adds an account to the chart of accounts.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive; referenced accounts are
	// never hard-deleted.
	DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error
}

// AccountSvcFacade combines all account registry service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

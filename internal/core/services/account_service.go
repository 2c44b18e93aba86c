package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
)

// accountService implements the account registry on top of the account repository.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountSvcFacade implementation.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds a new account to the company's chart of accounts. The
// normal balance defaults to the expected direction for the type; an explicit
// opposite direction creates a contra account.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	normal := domain.BalanceDirection(req.NormalBalance)
	if normal == "" {
		normal = domain.ExpectedNormalBalance(accountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     companyID,
		AccountCode:   req.AccountCode,
		AccountName:   req.AccountName,
		AccountType:   accountType,
		SubType:       req.SubType,
		NormalBalance: normal,
		Description:   req.Description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.AccountCode)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves a single account within the company scope.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
}

// ListAccounts retrieves the chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, companyID, includeInactive)
}

// DeactivateAccount marks an account inactive. Hard deletion is never offered:
// accounts referenced by ledger rows must remain resolvable forever.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, companyID, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

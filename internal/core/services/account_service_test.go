package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	ctx             context.Context

	companyID string
	userID    string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.ctx = context.Background()

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_DefaultsNormalBalance() {
	req := dto.CreateAccountRequest{
		AccountCode: "1000",
		AccountName: "Cash",
		AccountType: "ASSET",
		SubType:     "Current Asset",
	}
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.NormalBalance == domain.DebitBalance && a.IsActive && a.CreatedBy == s.userID
	})).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, s.companyID, req, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.DebitBalance, account.NormalBalance)
	s.False(account.IsContra())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_ExplicitContra() {
	req := dto.CreateAccountRequest{
		AccountCode:   "1510",
		AccountName:   "Accumulated Depreciation",
		AccountType:   "ASSET",
		SubType:       "Fixed Asset",
		NormalBalance: "CREDIT",
	}
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, s.companyID, req, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.CreditBalance, account.NormalBalance)
	s.True(account.IsContra())
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{
		AccountCode: "1000",
		AccountName: "Cash",
		AccountType: "ASSET",
	}
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateAccount(s.ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Contains(err.Error(), "1000")
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_UnknownAccount() {
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.companyID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeactivateAccount(s.ctx, s.companyID, accountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockAccountRepo.AssertNotCalled(s.T(), "DeactivateAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	account := &domain.Account{AccountID: uuid.NewString(), CompanyID: s.companyID, IsActive: true}
	s.mockAccountRepo.On("FindAccountByID", s.ctx, s.companyID, account.AccountID).Return(account, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", s.ctx, s.companyID, account.AccountID, s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.DeactivateAccount(s.ctx, s.companyID, account.AccountID, s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

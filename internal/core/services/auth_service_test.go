package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/platform/config"
)

const testPassword = "correct horse battery staple"

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	cfg          *config.Config
	service      portssvc.AuthSvcFacade
	ctx          context.Context

	user *domain.User
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "bookkeeper-test",
		JWTExpiryDuration: time.Hour,
	}
	s.service = services.NewAuthService(s.cfg, s.mockUserRepo)
	s.ctx = context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	s.Require().NoError(err)
	s.user = &domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    uuid.NewString(),
		Name:         "Pat Bookkeeper",
		Email:        "pat@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.user.Email).Return(s.user, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Email: s.user.Email, Password: testPassword})

	s.Require().NoError(err)
	s.Equal(s.user.UserID, resp.UserID)
	s.Equal(s.user.CompanyID, resp.CompanyID)
	s.Equal(s.user.Name, resp.Name)
	s.NotEmpty(resp.Token)

	// The issued token carries the company scope and operator subject.
	claims := &middleware.BookkeepingClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	s.Require().NoError(err)
	s.True(token.Valid)
	s.Equal(s.user.UserID, claims.Subject)
	s.Equal(s.user.CompanyID, claims.CompanyID)
	s.Equal(s.cfg.JWTIssuer, claims.Issuer)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "nobody@example.com", Password: testPassword})

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.user.Email).Return(s.user, nil).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: s.user.Email, Password: "wrong"})

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrInvalidCredentials)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *AuthServiceTestSuite) TestLogin_DeactivatedUser() {
	s.user.IsActive = false
	s.mockUserRepo.On("FindUserByEmail", s.ctx, s.user.Email).Return(s.user, nil).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: s.user.Email, Password: testPassword})

	s.Require().Error(err)
	// Indistinguishable from a wrong password.
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestGetUserByID_InactiveHidden() {
	s.user.IsActive = false
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindUserByID", s.ctx, s.user.UserID).Return(s.user, nil).Once()
	userSvc := services.NewUserService(mockRepo)

	_, err := userSvc.GetUserByID(s.ctx, s.user.UserID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

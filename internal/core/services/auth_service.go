package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/apperrors"
	portsrepo "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/repositories"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/platform/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email, a wrong password or
// a deactivated user. The three cases are indistinguishable to the caller.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrForbidden)

// authService verifies credentials against stored bcrypt hashes and issues
// company-scoped bearer tokens.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		logger.Warn("Login attempt for deactivated user", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := middleware.BookkeepingClaims{
		CompanyID: user.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("company_id", user.CompanyID))

	return &dto.LoginResponse{
		Token:     token,
		UserID:    user.UserID,
		CompanyID: user.CompanyID,
		Name:      user.Name,
	}, nil
}

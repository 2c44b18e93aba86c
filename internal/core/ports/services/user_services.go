package services

import (
	"context"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
)

// UserSvcFacade defines user lookup operations needed for audit display.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade verifies credentials and issues bearer tokens. Session
// management beyond token issuance is an external collaborator.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

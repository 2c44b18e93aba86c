package repositories

import (
	"context"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users, needed for
// login and for resolving postedBy/voidedBy references.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

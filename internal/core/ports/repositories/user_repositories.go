package repositories

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
)

// UserRepositoryFacade defines storage operations for users.
type UserRepositoryFacade interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

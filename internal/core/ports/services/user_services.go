package services

import (
	"context"

	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

// UserSvcFacade defines operator account and authentication operations.
type UserSvcFacade interface {
	// Register creates an operator account with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Login verifies credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

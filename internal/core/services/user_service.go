package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portsrepo "github.com/projuktisheba/stockledger-backend/internal/core/ports/repositories"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
	"github.com/projuktisheba/stockledger-backend/internal/utils"
)

// userService handles operator accounts and token issuance.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade

	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates an operator account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	return &user, nil
}

// Login verifies credentials and issues a signed JWT.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so usernames cannot be probed.
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, limit, offset)
}

package service

import (
	"context"

	"gclub-api/core/errors"
	"gclub-api/core/logger"
	"gclub-api/modules/auth/entity"
	"gclub-api/modules/auth/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	repo repository.AuthRepositoryInterface
}

type AuthServiceInterface interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError)
	IsModerator(ctx context.Context, id uuid.UUID) (bool, error)
}

func NewAuthService(repo repository.AuthRepositoryInterface) AuthServiceInterface {
	return &AuthService{repo: repo}
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Error("AuthService:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return user, nil
}

// IsModerator reports whether the user may act on other users' posts.
func (s *AuthService) IsModerator(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == entity.RoleModerator, nil
}

package repository

import (
	"context"
	"database/sql"

	"gclub-api/core/database"
	"gclub-api/core/logger"
	"gclub-api/modules/auth/entity"

	"github.com/google/uuid"
)

type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT id, name, email, role, created_at, updated_at FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}
	return &user, nil
}

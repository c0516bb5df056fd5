package repository

import (
	"context"
	"database/sql"
	"time"

	"gclub-api/core/database"
	"gclub-api/core/logger"
	"gclub-api/core/params"
	"gclub-api/modules/gamepost/entity"

	"github.com/google/uuid"
)

// PostRepository handles game_posts database operations
type PostRepository struct {
	DB database.IDatabase
}

func NewPostRepository(db database.IDatabase) *PostRepository {
	return &PostRepository{DB: db}
}

// PostRepositoryInterface defines the repository contract
type PostRepositoryInterface interface {
	Create(ctx context.Context, post *entity.GamePost) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GamePost, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.GamePost, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedPostEntity, error)
	UpdateState(ctx context.Context, id uuid.UUID, status entity.PostStatus, isFull bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListStartDue(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	ListInProgressStale(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	ListOpenStale(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

const postColumns = `id, author_id, title, slug, share_code, content, capacity, start_time, status, is_full, created_at, updated_at`

func (r *PostRepository) Create(ctx context.Context, post *entity.GamePost) error {
	query := `
		INSERT INTO game_posts (author_id, title, slug, share_code, content, capacity, start_time, status, is_full)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.GetContext(ctx, post, query,
		post.AuthorID, post.Title, post.Slug, post.ShareCode, post.Content,
		post.Capacity, post.StartTime, post.Status, post.IsFull)
	if err != nil {
		logger.Error("PostRepository:Create", err)
		return err
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GamePost, error) {
	query := `SELECT ` + postColumns + ` FROM game_posts WHERE id = $1`

	var post entity.GamePost
	err := r.DB.GetContext(ctx, &post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PostRepository:GetByID", err)
		return nil, err
	}
	return &post, nil
}

// GetByIDForUpdate locks the post row for the rest of the transaction. Every
// engine mutation takes this lock first, which serializes concurrent
// join/leave/toggle calls per post.
func (r *PostRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.GamePost, error) {
	query := `SELECT ` + postColumns + ` FROM game_posts WHERE id = $1 FOR UPDATE`

	var post entity.GamePost
	err := r.DB.GetContext(ctx, &post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PostRepository:GetByIDForUpdate", err)
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context, p params.QueryParams) (*entity.PaginatedPostEntity, error) {
	offset := (p.PageNumber - 1) * p.PageSize

	baseQuery := `FROM game_posts`
	args := []any{}
	if p.Search != "" {
		baseQuery += ` WHERE title ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) `+baseQuery, args...)
	if err != nil {
		logger.Error("PostRepository:List:Count", err)
		return nil, err
	}

	query := `SELECT ` + postColumns + ` ` + baseQuery + `
		ORDER BY CASE WHEN status IN ('open', 'full') THEN 0 ELSE 1 END, start_time ASC`
	if p.Search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, p.PageSize, offset)

	var posts []entity.GamePost
	err = r.DB.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		logger.Error("PostRepository:List:Select", err)
		return nil, err
	}

	return &entity.PaginatedPostEntity{
		Items:      posts,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *PostRepository) UpdateState(ctx context.Context, id uuid.UUID, status entity.PostStatus, isFull bool) error {
	query := `UPDATE game_posts SET status = $2, is_full = $3, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, status, isFull)
	if err != nil {
		logger.Error("PostRepository:UpdateState", err)
		return err
	}
	return nil
}

// Delete removes the post; participants and waiting entries cascade.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM game_posts WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("PostRepository:Delete", err)
		return err
	}
	return nil
}

// ===================== Sweep candidate selection =====================

func (r *PostRepository) ListStartDue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `SELECT id FROM game_posts WHERE status = 'full' AND start_time <= $1`
	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, now); err != nil {
		logger.Error("PostRepository:ListStartDue", err)
		return nil, err
	}
	return ids, nil
}

func (r *PostRepository) ListInProgressStale(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `SELECT id FROM game_posts WHERE status = 'in_progress' AND start_time <= $1`
	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, cutoff); err != nil {
		logger.Error("PostRepository:ListInProgressStale", err)
		return nil, err
	}
	return ids, nil
}

func (r *PostRepository) ListOpenStale(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `SELECT id FROM game_posts WHERE status = 'open' AND start_time <= $1`
	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, cutoff); err != nil {
		logger.Error("PostRepository:ListOpenStale", err)
		return nil, err
	}
	return ids, nil
}

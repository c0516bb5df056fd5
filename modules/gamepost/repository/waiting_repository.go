package repository

import (
	"context"
	"database/sql"
	"time"

	"gclub-api/core/database"
	"gclub-api/core/logger"
	"gclub-api/modules/gamepost/entity"

	"github.com/google/uuid"
)

// WaitingRepository handles waiting_entries database operations
type WaitingRepository struct {
	DB database.IDatabase
}

func NewWaitingRepository(db database.IDatabase) *WaitingRepository {
	return &WaitingRepository{DB: db}
}

type WaitingRepositoryInterface interface {
	Create(ctx context.Context, entry *entity.WaitingEntry) error
	Update(ctx context.Context, entry *entity.WaitingEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WaitingEntry, error)
	GetOpenByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.WaitingEntry, error)
	OldestWaiting(ctx context.Context, postID uuid.UUID) (*entity.WaitingEntry, error)
	ListByStatus(ctx context.Context, postID uuid.UUID, status entity.WaitingStatus) ([]entity.WaitingEntry, error)
	MarkAllInvited(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	PromoteDue(ctx context.Context, now time.Time) (int64, error)
}

const waitingColumns = `id, post_id, user_id, status, available_time, requested_at, created_at, updated_at`

func (r *WaitingRepository) Create(ctx context.Context, entry *entity.WaitingEntry) error {
	query := `
		INSERT INTO waiting_entries (post_id, user_id, status, available_time, requested_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.GetContext(ctx, entry, query,
		entry.PostID, entry.UserID, entry.Status, entry.AvailableTime, entry.RequestedAt)
	if err != nil {
		logger.Error("WaitingRepository:Create", err)
		return err
	}
	return nil
}

// Update overwrites the mutable fields of an existing registration; a repeat
// wait request reuses the row instead of duplicating it.
func (r *WaitingRepository) Update(ctx context.Context, entry *entity.WaitingEntry) error {
	query := `UPDATE waiting_entries
		SET status = $2, available_time = $3, requested_at = $4, updated_at = NOW()
		WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, entry.ID, entry.Status, entry.AvailableTime, entry.RequestedAt)
	if err != nil {
		logger.Error("WaitingRepository:Update", err)
		return err
	}
	return nil
}

func (r *WaitingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WaitingEntry, error) {
	query := `SELECT ` + waitingColumns + ` FROM waiting_entries WHERE id = $1`

	var entry entity.WaitingEntry
	err := r.DB.GetContext(ctx, &entry, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("WaitingRepository:GetByID", err)
		return nil, err
	}
	return &entry, nil
}

func (r *WaitingRepository) GetOpenByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.WaitingEntry, error) {
	query := `SELECT ` + waitingColumns + ` FROM waiting_entries
		WHERE post_id = $1 AND user_id = $2 AND status <> 'canceled'`

	var entry entity.WaitingEntry
	err := r.DB.GetContext(ctx, &entry, query, postID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("WaitingRepository:GetOpenByPostAndUser", err)
		return nil, err
	}
	return &entry, nil
}

// OldestWaiting returns the FIFO head among plain WAITING entries; id breaks
// ties deterministically. TIME_WAITING entries are never eligible here.
func (r *WaitingRepository) OldestWaiting(ctx context.Context, postID uuid.UUID) (*entity.WaitingEntry, error) {
	query := `SELECT ` + waitingColumns + ` FROM waiting_entries
		WHERE post_id = $1 AND status = 'waiting'
		ORDER BY requested_at ASC, id ASC
		LIMIT 1`

	var entry entity.WaitingEntry
	err := r.DB.GetContext(ctx, &entry, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("WaitingRepository:OldestWaiting", err)
		return nil, err
	}
	return &entry, nil
}

func (r *WaitingRepository) ListByStatus(ctx context.Context, postID uuid.UUID, status entity.WaitingStatus) ([]entity.WaitingEntry, error) {
	query := `SELECT ` + waitingColumns + ` FROM waiting_entries
		WHERE post_id = $1 AND status = $2
		ORDER BY requested_at ASC, id ASC`

	var entries []entity.WaitingEntry
	err := r.DB.SelectContext(ctx, &entries, query, postID, status)
	if err != nil {
		logger.Error("WaitingRepository:ListByStatus", err)
		return nil, err
	}
	return entries, nil
}

// MarkAllInvited flips every WAITING entry of the post to INVITED and returns
// the affected user ids so the caller can notify them.
func (r *WaitingRepository) MarkAllInvited(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	query := `UPDATE waiting_entries
		SET status = 'invited', updated_at = NOW()
		WHERE post_id = $1 AND status = 'waiting'
		RETURNING user_id`

	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		logger.Error("WaitingRepository:MarkAllInvited", err)
		return nil, err
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			logger.Error("WaitingRepository:MarkAllInvited:Scan", err)
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func (r *WaitingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitingStatus) error {
	query := `UPDATE waiting_entries SET status = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("WaitingRepository:UpdateStatus", err)
		return err
	}
	return nil
}

func (r *WaitingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM waiting_entries WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("WaitingRepository:Delete", err)
		return err
	}
	return nil
}

// PromoteDue flips TIME_WAITING entries whose available time has arrived to
// WAITING. Eligibility only; no seats are assigned here.
func (r *WaitingRepository) PromoteDue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE waiting_entries
		SET status = 'waiting', updated_at = NOW()
		WHERE status = 'time_waiting' AND available_time <= $1`

	result, err := r.DB.ExecResultContext(ctx, query, now)
	if err != nil {
		logger.Error("WaitingRepository:PromoteDue", err)
		return 0, err
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

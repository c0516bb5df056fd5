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

// ParticipantRepository handles post_participants database operations
type ParticipantRepository struct {
	DB database.IDatabase
}

func NewParticipantRepository(db database.IDatabase) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

type ParticipantRepositoryInterface interface {
	Create(ctx context.Context, participant *entity.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	GetActiveByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.Participant, error)
	GetLatestByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.Participant, error)
	ListActive(ctx context.Context, postID uuid.UUID) ([]entity.Participant, error)
	CountActive(ctx context.Context, postID uuid.UUID) (int, error)
	MarkLeftEarly(ctx context.Context, id uuid.UUID, leftAt time.Time) error
	Reactivate(ctx context.Context, id uuid.UUID, joinedAt time.Time) error
	SetLeader(ctx context.Context, id uuid.UUID, isLeader bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const participantColumns = `id, post_id, user_id, guest_name, is_leader, status, joined_at, left_at, created_at, updated_at`

func (r *ParticipantRepository) Create(ctx context.Context, participant *entity.Participant) error {
	query := `
		INSERT INTO post_participants (post_id, user_id, guest_name, is_leader, status, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.GetContext(ctx, participant, query,
		participant.PostID, participant.UserID, participant.GuestName,
		participant.IsLeader, participant.Status, participant.JoinedAt)
	if err != nil {
		logger.Error("ParticipantRepository:Create", err)
		return err
	}
	return nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM post_participants WHERE id = $1`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetByID", err)
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepository) GetActiveByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM post_participants
		WHERE post_id = $1 AND user_id = $2 AND status = 'active'`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, postID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetActiveByPostAndUser", err)
		return nil, err
	}
	return &participant, nil
}

// GetLatestByPostAndUser returns the user's most recent roster entry in any
// status; promotion reactivates a LEFT_EARLY row instead of inserting a
// duplicate.
func (r *ParticipantRepository) GetLatestByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM post_participants
		WHERE post_id = $1 AND user_id = $2
		ORDER BY joined_at DESC
		LIMIT 1`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, postID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetLatestByPostAndUser", err)
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepository) ListActive(ctx context.Context, postID uuid.UUID) ([]entity.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM post_participants
		WHERE post_id = $1 AND status = 'active'
		ORDER BY joined_at ASC, id ASC`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, postID)
	if err != nil {
		logger.Error("ParticipantRepository:ListActive", err)
		return nil, err
	}
	return participants, nil
}

func (r *ParticipantRepository) CountActive(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM post_participants WHERE post_id = $1 AND status = 'active'`
	err := r.DB.GetContext(ctx, &count, query, postID)
	if err != nil {
		logger.Error("ParticipantRepository:CountActive", err)
		return 0, err
	}
	return count, nil
}

func (r *ParticipantRepository) MarkLeftEarly(ctx context.Context, id uuid.UUID, leftAt time.Time) error {
	query := `UPDATE post_participants
		SET status = 'left_early', is_leader = false, left_at = $2, updated_at = NOW()
		WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, leftAt)
	if err != nil {
		logger.Error("ParticipantRepository:MarkLeftEarly", err)
		return err
	}
	return nil
}

// Reactivate returns a LEFT_EARLY entry to the roster with a fresh tenure.
func (r *ParticipantRepository) Reactivate(ctx context.Context, id uuid.UUID, joinedAt time.Time) error {
	query := `UPDATE post_participants
		SET status = 'active', is_leader = false, joined_at = $2, left_at = NULL, updated_at = NOW()
		WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, joinedAt)
	if err != nil {
		logger.Error("ParticipantRepository:Reactivate", err)
		return err
	}
	return nil
}

func (r *ParticipantRepository) SetLeader(ctx context.Context, id uuid.UUID, isLeader bool) error {
	query := `UPDATE post_participants SET is_leader = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, isLeader)
	if err != nil {
		logger.Error("ParticipantRepository:SetLeader", err)
		return err
	}
	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM post_participants WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ParticipantRepository:Delete", err)
		return err
	}
	return nil
}

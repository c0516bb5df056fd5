package entity

import (
	"time"

	"gclub-api/core/entity"

	"github.com/google/uuid"
)

type ParticipantStatus string

const (
	ParticipantStatusActive    ParticipantStatus = "active"
	ParticipantStatusLeftEarly ParticipantStatus = "left_early"
)

// Participant is one roster entry. UserID is nil for guests seated by the
// author; GuestName is set instead.
type Participant struct {
	PostID    uuid.UUID         `db:"post_id" json:"post_id"`
	UserID    *uuid.UUID        `db:"user_id" json:"user_id"`
	GuestName *string           `db:"guest_name" json:"guest_name,omitempty"`
	IsLeader  bool              `db:"is_leader" json:"is_leader"`
	Status    ParticipantStatus `db:"status" json:"status"`
	JoinedAt  time.Time         `db:"joined_at" json:"joined_at"`
	LeftAt    *time.Time        `db:"left_at" json:"left_at,omitempty"`
	entity.BaseEntity
}

func (p *Participant) Active() bool {
	return p.Status == ParticipantStatusActive
}

// BelongsTo reports whether the entry is the given user's seat.
func (p *Participant) BelongsTo(userID uuid.UUID) bool {
	return p.UserID != nil && *p.UserID == userID
}

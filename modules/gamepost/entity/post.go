package entity

import (
	"time"

	"gclub-api/core/entity"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusOpen       PostStatus = "open"
	PostStatusFull       PostStatus = "full"
	PostStatusInProgress PostStatus = "in_progress"
	PostStatusCompleted  PostStatus = "completed"
	PostStatusExpired    PostStatus = "expired"
)

type GamePost struct {
	AuthorID  uuid.UUID  `db:"author_id" json:"author_id"`
	Title     string     `db:"title" json:"title"`
	Slug      string     `db:"slug" json:"slug"`
	ShareCode string     `db:"share_code" json:"share_code"`
	Content   string     `db:"content" json:"content"`
	Capacity  int        `db:"capacity" json:"capacity"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	Status    PostStatus `db:"status" json:"status"`
	IsFull    bool       `db:"is_full" json:"is_full"`
	entity.BaseEntity
}

type PaginatedPostEntity = entity.Pagination[GamePost]

// RecomputeSeatState derives the post's seat-dependent state from the number
// of active participants. Every mutating operation runs this inside its
// transaction so the is_full flag and the OPEN/FULL edge never drift from the
// roster.
func RecomputeSeatState(status PostStatus, activeCount, capacity int) (PostStatus, bool) {
	isFull := activeCount >= capacity
	switch status {
	case PostStatusOpen:
		if isFull {
			return PostStatusFull, true
		}
	case PostStatusFull:
		if !isFull {
			return PostStatusOpen, false
		}
	}
	return status, isFull
}

// NextToggleStatus is the author's manual transition table. The second return
// is false for states with no manual edge (EXPIRED has none).
func NextToggleStatus(s PostStatus) (PostStatus, bool) {
	switch s {
	case PostStatusOpen, PostStatusFull:
		return PostStatusInProgress, true
	case PostStatusInProgress:
		return PostStatusCompleted, true
	case PostStatusCompleted:
		return PostStatusOpen, true
	default:
		return s, false
	}
}

// Recruiting reports whether the post still accepts roster mutations before
// the session starts.
func (p *GamePost) Recruiting() bool {
	return p.Status == PostStatusOpen || p.Status == PostStatusFull
}

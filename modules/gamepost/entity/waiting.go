package entity

import (
	"time"

	"gclub-api/core/entity"

	"github.com/google/uuid"
)

type WaitingStatus string

const (
	WaitingStatusWaiting     WaitingStatus = "waiting"
	WaitingStatusTimeWaiting WaitingStatus = "time_waiting"
	WaitingStatusInvited     WaitingStatus = "invited"
	WaitingStatusCanceled    WaitingStatus = "canceled"
)

// WaitingEntry is one queue item. AvailableTime is set only for
// time-deferred waits and must be strictly after the post's start time.
type WaitingEntry struct {
	PostID        uuid.UUID     `db:"post_id" json:"post_id"`
	UserID        uuid.UUID     `db:"user_id" json:"user_id"`
	Status        WaitingStatus `db:"status" json:"status"`
	AvailableTime *time.Time    `db:"available_time" json:"available_time,omitempty"`
	RequestedAt   time.Time     `db:"requested_at" json:"requested_at"`
	entity.BaseEntity
}

// Open reports whether the entry still holds the user's place in the queue.
func (w *WaitingEntry) Open() bool {
	return w.Status != WaitingStatusCanceled
}

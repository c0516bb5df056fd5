package dto

import (
	"time"

	"gclub-api/modules/gamepost/entity"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Capacity  int       `json:"capacity"`
	StartTime time.Time `json:"start_time"`
}

type RequestWaitRequest struct {
	// AvailableTime marks a time-deferred wait; it must be strictly after
	// the post's scheduled start. Omitted means "seat me as soon as one
	// frees".
	AvailableTime *time.Time `json:"available_time,omitempty"`
}

type LeaveEarlyRequest struct {
	// ParticipantID lets the author remove another participant mid-session.
	// Omitted means the caller is leaving their own seat.
	ParticipantID *uuid.UUID `json:"participant_id,omitempty"`
}

type AddGuestRequest struct {
	GuestName string `json:"guest_name"`
}

type PostDetailResponse struct {
	Post         entity.GamePost      `json:"post"`
	Participants []entity.Participant `json:"participants"`
	WaitingCount int                  `json:"waiting_count"`
}

type JoinResponse struct {
	Participant entity.Participant `json:"participant"`
	PostStatus  entity.PostStatus  `json:"post_status"`
}

type WaitAckResponse struct {
	EntryID  uuid.UUID            `json:"entry_id"`
	Status   entity.WaitingStatus `json:"status"`
	Position int                  `json:"position"`
}

type ToggleStatusResponse struct {
	Status entity.PostStatus `json:"status"`
}

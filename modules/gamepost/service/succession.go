package service

import (
	"gclub-api/modules/gamepost/entity"

	"github.com/google/uuid"
)

// NextLeader picks the successor when the current leader departs: the
// longest-tenured remaining active participant, earliest joined_at first,
// id as the stable tie-break. Guests cannot lead; they have no account to
// act with. Returns nil when the roster empties.
func NextLeader(active []entity.Participant, leavingID uuid.UUID) *entity.Participant {
	var next *entity.Participant
	for i := range active {
		p := &active[i]
		if p.ID == leavingID || !p.Active() || p.UserID == nil {
			continue
		}
		if next == nil {
			next = p
			continue
		}
		if p.JoinedAt.Before(next.JoinedAt) ||
			(p.JoinedAt.Equal(next.JoinedAt) && p.ID.String() < next.ID.String()) {
			next = p
		}
	}
	return next
}

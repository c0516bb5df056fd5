package service

import (
	"testing"
	"time"

	coreEntity "gclub-api/core/entity"
	"gclub-api/modules/gamepost/entity"

	"github.com/google/uuid"
)

func member(id uuid.UUID, userID uuid.UUID, joinedAt time.Time) entity.Participant {
	uid := userID
	return entity.Participant{
		BaseEntity: coreEntity.BaseEntity{ID: id},
		UserID:     &uid,
		Status:     entity.ParticipantStatusActive,
		JoinedAt:   joinedAt,
	}
}

func TestNextLeaderLongestTenure(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	leaver := member(uuid.New(), uuid.New(), base)
	oldest := member(uuid.New(), uuid.New(), base.Add(time.Minute))
	newer := member(uuid.New(), uuid.New(), base.Add(2*time.Minute))

	got := NextLeader([]entity.Participant{newer, leaver, oldest}, leaver.ID)
	if got == nil || got.ID != oldest.ID {
		t.Errorf("NextLeader = %+v, want the longest-tenured member", got)
	}
}

func TestNextLeaderTieBreaksByID(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	leaver := member(uuid.New(), uuid.New(), base)
	a := member(uuid.New(), uuid.New(), base.Add(time.Minute))
	b := member(uuid.New(), uuid.New(), base.Add(time.Minute))

	want := a
	if b.ID.String() < a.ID.String() {
		want = b
	}
	got := NextLeader([]entity.Participant{a, b, leaver}, leaver.ID)
	if got == nil || got.ID != want.ID {
		t.Errorf("tie-break picked %v, want %v", got, want.ID)
	}
	// Order of the input slice must not matter.
	got = NextLeader([]entity.Participant{b, a, leaver}, leaver.ID)
	if got == nil || got.ID != want.ID {
		t.Errorf("tie-break is order dependent: got %v, want %v", got, want.ID)
	}
}

func TestNextLeaderSkipsGuests(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	leaver := member(uuid.New(), uuid.New(), base)
	guestName := "Sam"
	guest := entity.Participant{
		BaseEntity: coreEntity.BaseEntity{ID: uuid.New()},
		GuestName:  &guestName,
		Status:     entity.ParticipantStatusActive,
		JoinedAt:   base.Add(time.Minute),
	}
	registered := member(uuid.New(), uuid.New(), base.Add(time.Hour))

	got := NextLeader([]entity.Participant{guest, registered, leaver}, leaver.ID)
	if got == nil || got.ID != registered.ID {
		t.Errorf("NextLeader = %+v, want the registered member over the older guest", got)
	}
}

func TestNextLeaderEmptyRoster(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	leaver := member(uuid.New(), uuid.New(), base)

	if got := NextLeader([]entity.Participant{leaver}, leaver.ID); got != nil {
		t.Errorf("NextLeader on emptying roster = %+v, want nil", got)
	}
	if got := NextLeader(nil, leaver.ID); got != nil {
		t.Errorf("NextLeader on empty slice = %+v, want nil", got)
	}
}

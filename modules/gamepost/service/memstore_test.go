package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gclub-api/core/params"
	"gclub-api/modules/gamepost/entity"
	"gclub-api/modules/gamepost/repository"
	notifDto "gclub-api/modules/notification/dto"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the postgres repositories. It gives
// the engine the same query surface without a database; every Do call runs
// against shared state, which is what the lock-free tests want.
type memStore struct {
	posts        map[uuid.UUID]*entity.GamePost
	participants map[uuid.UUID]*entity.Participant
	waiting      map[uuid.UUID]*entity.WaitingEntry
}

func newMemStore() *memStore {
	return &memStore{
		posts:        make(map[uuid.UUID]*entity.GamePost),
		participants: make(map[uuid.UUID]*entity.Participant),
		waiting:      make(map[uuid.UUID]*entity.WaitingEntry),
	}
}

func (m *memStore) Do(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	return fn(ctx, repository.Repos{
		Posts:        &memPosts{m},
		Participants: &memParticipants{m},
		Waiting:      &memWaiting{m},
	})
}

type memPosts struct{ s *memStore }

func (r *memPosts) Create(_ context.Context, post *entity.GamePost) error {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.s.posts[post.ID] = post
	return nil
}

func (r *memPosts) GetByID(_ context.Context, id uuid.UUID) (*entity.GamePost, error) {
	return r.s.posts[id], nil
}

func (r *memPosts) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.GamePost, error) {
	return r.GetByID(ctx, id)
}

func (r *memPosts) List(_ context.Context, p params.QueryParams) (*entity.PaginatedPostEntity, error) {
	var items []entity.GamePost
	for _, post := range r.s.posts {
		if p.Search != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(p.Search)) {
			continue
		}
		items = append(items, *post)
	}
	sort.Slice(items, func(i, j int) bool {
		ri, rj := items[i].Recruiting(), items[j].Recruiting()
		if ri != rj {
			return ri
		}
		return items[i].StartTime.Before(items[j].StartTime)
	})
	return &entity.PaginatedPostEntity{
		Items:      items,
		TotalItems: len(items),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *memPosts) UpdateState(_ context.Context, id uuid.UUID, status entity.PostStatus, isFull bool) error {
	if post, ok := r.s.posts[id]; ok {
		post.Status = status
		post.IsFull = isFull
	}
	return nil
}

func (r *memPosts) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.posts, id)
	for pid, p := range r.s.participants {
		if p.PostID == id {
			delete(r.s.participants, pid)
		}
	}
	for wid, w := range r.s.waiting {
		if w.PostID == id {
			delete(r.s.waiting, wid)
		}
	}
	return nil
}

func (r *memPosts) ListStartDue(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, post := range r.s.posts {
		if post.Status == entity.PostStatusFull && !post.StartTime.After(now) {
			ids = append(ids, post.ID)
		}
	}
	return ids, nil
}

func (r *memPosts) ListInProgressStale(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, post := range r.s.posts {
		if post.Status == entity.PostStatusInProgress && !post.StartTime.After(cutoff) {
			ids = append(ids, post.ID)
		}
	}
	return ids, nil
}

func (r *memPosts) ListOpenStale(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, post := range r.s.posts {
		if post.Status == entity.PostStatusOpen && !post.StartTime.After(cutoff) {
			ids = append(ids, post.ID)
		}
	}
	return ids, nil
}

type memParticipants struct{ s *memStore }

func (r *memParticipants) Create(_ context.Context, participant *entity.Participant) error {
	participant.ID = uuid.New()
	participant.CreatedAt = time.Now()
	participant.UpdatedAt = participant.CreatedAt
	r.s.participants[participant.ID] = participant
	return nil
}

func (r *memParticipants) GetByID(_ context.Context, id uuid.UUID) (*entity.Participant, error) {
	return r.s.participants[id], nil
}

func (r *memParticipants) GetActiveByPostAndUser(_ context.Context, postID, userID uuid.UUID) (*entity.Participant, error) {
	for _, p := range r.s.participants {
		if p.PostID == postID && p.BelongsTo(userID) && p.Active() {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memParticipants) GetLatestByPostAndUser(_ context.Context, postID, userID uuid.UUID) (*entity.Participant, error) {
	var latest *entity.Participant
	for _, p := range r.s.participants {
		if p.PostID != postID || !p.BelongsTo(userID) {
			continue
		}
		if latest == nil || p.JoinedAt.After(latest.JoinedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (r *memParticipants) ListActive(_ context.Context, postID uuid.UUID) ([]entity.Participant, error) {
	var out []entity.Participant
	for _, p := range r.s.participants {
		if p.PostID == postID && p.Active() {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *memParticipants) CountActive(ctx context.Context, postID uuid.UUID) (int, error) {
	active, _ := r.ListActive(ctx, postID)
	return len(active), nil
}

func (r *memParticipants) MarkLeftEarly(_ context.Context, id uuid.UUID, leftAt time.Time) error {
	if p, ok := r.s.participants[id]; ok {
		p.Status = entity.ParticipantStatusLeftEarly
		p.IsLeader = false
		t := leftAt
		p.LeftAt = &t
	}
	return nil
}

func (r *memParticipants) Reactivate(_ context.Context, id uuid.UUID, joinedAt time.Time) error {
	if p, ok := r.s.participants[id]; ok {
		p.Status = entity.ParticipantStatusActive
		p.IsLeader = false
		p.JoinedAt = joinedAt
		p.LeftAt = nil
	}
	return nil
}

func (r *memParticipants) SetLeader(_ context.Context, id uuid.UUID, isLeader bool) error {
	if p, ok := r.s.participants[id]; ok {
		p.IsLeader = isLeader
	}
	return nil
}

func (r *memParticipants) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.participants, id)
	return nil
}

type memWaiting struct{ s *memStore }

func (r *memWaiting) Create(_ context.Context, entry *entity.WaitingEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	r.s.waiting[entry.ID] = entry
	return nil
}

func (r *memWaiting) Update(_ context.Context, entry *entity.WaitingEntry) error {
	r.s.waiting[entry.ID] = entry
	return nil
}

func (r *memWaiting) GetByID(_ context.Context, id uuid.UUID) (*entity.WaitingEntry, error) {
	return r.s.waiting[id], nil
}

func (r *memWaiting) GetOpenByPostAndUser(_ context.Context, postID, userID uuid.UUID) (*entity.WaitingEntry, error) {
	for _, w := range r.s.waiting {
		if w.PostID == postID && w.UserID == userID && w.Open() {
			return w, nil
		}
	}
	return nil, nil
}

func (r *memWaiting) OldestWaiting(ctx context.Context, postID uuid.UUID) (*entity.WaitingEntry, error) {
	entries, _ := r.ListByStatus(ctx, postID, entity.WaitingStatusWaiting)
	if len(entries) == 0 {
		return nil, nil
	}
	head := entries[0]
	return r.s.waiting[head.ID], nil
}

func (r *memWaiting) ListByStatus(_ context.Context, postID uuid.UUID, status entity.WaitingStatus) ([]entity.WaitingEntry, error) {
	var out []entity.WaitingEntry
	for _, w := range r.s.waiting {
		if w.PostID == postID && w.Status == status {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.Before(out[j].RequestedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *memWaiting) MarkAllInvited(_ context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	for _, w := range r.s.waiting {
		if w.PostID == postID && w.Status == entity.WaitingStatusWaiting {
			w.Status = entity.WaitingStatusInvited
			userIDs = append(userIDs, w.UserID)
		}
	}
	return userIDs, nil
}

func (r *memWaiting) UpdateStatus(_ context.Context, id uuid.UUID, status entity.WaitingStatus) error {
	if w, ok := r.s.waiting[id]; ok {
		w.Status = status
	}
	return nil
}

func (r *memWaiting) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.waiting, id)
	return nil
}

func (r *memWaiting) PromoteDue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, w := range r.s.waiting {
		if w.Status == entity.WaitingStatusTimeWaiting && w.AvailableTime != nil && !w.AvailableTime.After(now) {
			w.Status = entity.WaitingStatusWaiting
			n++
		}
	}
	return n, nil
}

// fakeNotifier records dispatched notifications.
type fakeNotifier struct {
	sent []*notifDto.CreateNotificationRequest
}

func (f *fakeNotifier) Create(_ context.Context, req *notifDto.CreateNotificationRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

func (f *fakeNotifier) byType(t string) []*notifDto.CreateNotificationRequest {
	var out []*notifDto.CreateNotificationRequest
	for _, n := range f.sent {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// fakeAuth marks a fixed set of users as moderators.
type fakeAuth struct {
	moderators map[uuid.UUID]bool
}

func (f *fakeAuth) IsModerator(_ context.Context, id uuid.UUID) (bool, error) {
	return f.moderators[id], nil
}

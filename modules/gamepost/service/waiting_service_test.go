package service

import (
	"context"
	"testing"
	"time"

	"gclub-api/core/errors"
	"gclub-api/modules/gamepost/dto"
	"gclub-api/modules/gamepost/entity"

	"github.com/google/uuid"
)

func TestRequestWaitImmediateRequiresFullRoster(t *testing.T) {
	env := newTestEnv(t)
	author, c := uuid.New(), uuid.New()
	post := env.createPost(t, author, 3)

	// Seats are free: the caller should join, not wait.
	_, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil)
	if appErr == nil || appErr.Code != errors.ErrInvalidState {
		t.Errorf("immediate wait with free seats = %v, want invalid state", appErr)
	}
}

func TestRequestWaitOnFullPost(t *testing.T) {
	env := newTestEnv(t)
	author, b, c := uuid.New(), uuid.New(), uuid.New()
	post := env.createPost(t, author, 2)
	env.mustJoin(t, post.ID, b)

	resp, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil)
	if appErr != nil {
		t.Fatalf("RequestWait: %v", appErr)
	}
	if resp.Status != entity.WaitingStatusWaiting || resp.Position != 1 {
		t.Errorf("ack = %+v, want waiting at position 1", resp)
	}
}

func TestRequestWaitDeferredMustBeAfterStart(t *testing.T) {
	env := newTestEnv(t)
	author, c := uuid.New(), uuid.New()
	post := env.createPost(t, author, 3)

	before := env.now.Add(time.Hour) // start is now+2h
	_, appErr := env.svc.RequestWait(context.Background(), post.ID, c, &dto.RequestWaitRequest{AvailableTime: &before})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("deferred wait before start = %v, want invalid input", appErr)
	}

	after := env.now.Add(3 * time.Hour)
	resp, appErr := env.svc.RequestWait(context.Background(), post.ID, c, &dto.RequestWaitRequest{AvailableTime: &after})
	if appErr != nil {
		t.Fatalf("RequestWait: %v", appErr)
	}
	if resp.Status != entity.WaitingStatusTimeWaiting {
		t.Errorf("status = %s, want time_waiting", resp.Status)
	}
	if resp.Position != 0 {
		t.Errorf("position = %d, want 0 (deferred entries have no queue position)", resp.Position)
	}
}

func TestRequestWaitRejectsAuthorAndMembers(t *testing.T) {
	env := newTestEnv(t)
	author, b, c := uuid.New(), uuid.New(), uuid.New()
	post := env.createPost(t, author, 2)
	env.mustJoin(t, post.ID, b)

	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, author, nil); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("author wait = %v, want forbidden", appErr)
	}
	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, b, nil); appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Errorf("member wait = %v, want already exists", appErr)
	}
	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil); appErr != nil {
		t.Errorf("outsider wait = %v, want success", appErr)
	}
}

func TestRequestWaitUpdatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	author, c := uuid.New(), uuid.New()
	post := env.createPost(t, author, 3)

	available := env.now.Add(3 * time.Hour)
	first, appErr := env.svc.RequestWait(context.Background(), post.ID, c, &dto.RequestWaitRequest{AvailableTime: &available})
	if appErr != nil {
		t.Fatalf("RequestWait: %v", appErr)
	}

	later := env.now.Add(4 * time.Hour)
	second, appErr := env.svc.RequestWait(context.Background(), post.ID, c, &dto.RequestWaitRequest{AvailableTime: &later})
	if appErr != nil {
		t.Fatalf("repeat RequestWait: %v", appErr)
	}
	if second.EntryID != first.EntryID {
		t.Errorf("repeat request created a new entry %s, want reuse of %s", second.EntryID, first.EntryID)
	}
	entry, _ := (&memWaiting{env.store}).GetByID(context.Background(), first.EntryID)
	if entry.AvailableTime == nil || !entry.AvailableTime.Equal(later) {
		t.Errorf("available time = %v, want %v", entry.AvailableTime, later)
	}
}

func TestRequestWaitCannotOverwriteInvitation(t *testing.T) {
	env := newTestEnv(t)
	author, b, c := uuid.New(), uuid.New(), uuid.New()
	post := env.createPost(t, author, 2)
	env.mustJoin(t, post.ID, b)

	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil); appErr != nil {
		t.Fatalf("RequestWait: %v", appErr)
	}
	if _, appErr := env.svc.ToggleStatus(context.Background(), post.ID, author); appErr != nil {
		t.Fatalf("ToggleStatus: %v", appErr)
	}
	if appErr := env.svc.LeaveEarly(context.Background(), post.ID, b, nil); appErr != nil {
		t.Fatalf("LeaveEarly: %v", appErr)
	}

	// C now holds a live seat offer; it must be answered, not overwritten.
	_, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Errorf("overwrite of invited entry = %v, want already exists", appErr)
	}
}

func TestCancelWaitOwnerOnlyAndIdempotent(t *testing.T) {
	env := newTestEnv(t)
	author, b, c := uuid.New(), uuid.New(), uuid.New()
	post := env.createPost(t, author, 2)
	env.mustJoin(t, post.ID, b)

	resp, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil)
	if appErr != nil {
		t.Fatalf("RequestWait: %v", appErr)
	}

	if appErr := env.svc.CancelWait(context.Background(), post.ID, resp.EntryID, uuid.New()); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("cancel by non-owner = %v, want forbidden", appErr)
	}

	if appErr := env.svc.CancelWait(context.Background(), post.ID, resp.EntryID, c); appErr != nil {
		t.Fatalf("CancelWait: %v", appErr)
	}
	entry, _ := (&memWaiting{env.store}).GetByID(context.Background(), resp.EntryID)
	if entry.Status != entity.WaitingStatusCanceled {
		t.Errorf("status = %s, want canceled (retained, not deleted)", entry.Status)
	}

	// Canceling again, or canceling a missing entry, is a quiet no-op.
	if appErr := env.svc.CancelWait(context.Background(), post.ID, resp.EntryID, c); appErr != nil {
		t.Errorf("repeat cancel = %v, want nil", appErr)
	}
	if appErr := env.svc.CancelWait(context.Background(), post.ID, uuid.New(), c); appErr != nil {
		t.Errorf("cancel of missing entry = %v, want nil", appErr)
	}

	// A fresh request after cancellation creates a clean new registration.
	again, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil)
	if appErr != nil {
		t.Fatalf("fresh RequestWait: %v", appErr)
	}
	if again.EntryID == resp.EntryID {
		t.Errorf("fresh request resurrected the canceled entry")
	}
}

func TestCanceledEntriesSkippedByPromotion(t *testing.T) {
	env := newTestEnv(t)
	author, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	post := env.createPost(t, author, 2)
	env.mustJoin(t, post.ID, b)

	first, appErr := env.svc.RequestWait(context.Background(), post.ID, c, nil)
	if appErr != nil {
		t.Fatalf("RequestWait C: %v", appErr)
	}
	env.advance(time.Minute)
	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, d, nil); appErr != nil {
		t.Fatalf("RequestWait D: %v", appErr)
	}

	if appErr := env.svc.CancelWait(context.Background(), post.ID, first.EntryID, c); appErr != nil {
		t.Fatalf("CancelWait: %v", appErr)
	}
	if appErr := env.svc.Leave(context.Background(), post.ID, b); appErr != nil {
		t.Fatalf("Leave: %v", appErr)
	}

	roster := env.activeRoster(t, post.ID)
	var seatedD bool
	for _, p := range roster {
		if p.BelongsTo(d) {
			seatedD = true
		}
		if p.BelongsTo(c) {
			t.Errorf("canceled entry was promoted")
		}
	}
	if !seatedD {
		t.Errorf("D (next eligible) was not promoted")
	}
}

func TestPromoteDueTimeWaiting(t *testing.T) {
	env := newTestEnv(t)
	author, c, d := uuid.New(), uuid.New(), uuid.New()
	post := env.createPost(t, author, 3)

	soon := env.now.Add(150 * time.Minute) // start is now+2h
	late := env.now.Add(6 * time.Hour)
	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, c, &dto.RequestWaitRequest{AvailableTime: &soon}); appErr != nil {
		t.Fatalf("RequestWait C: %v", appErr)
	}
	if _, appErr := env.svc.RequestWait(context.Background(), post.ID, d, &dto.RequestWaitRequest{AvailableTime: &late}); appErr != nil {
		t.Fatalf("RequestWait D: %v", appErr)
	}

	env.advance(3 * time.Hour)
	if err := env.svc.PromoteDueTimeWaiting(context.Background()); err != nil {
		t.Fatalf("PromoteDueTimeWaiting: %v", err)
	}

	waiting, _ := (&memWaiting{env.store}).ListByStatus(context.Background(), post.ID, entity.WaitingStatusWaiting)
	deferred, _ := (&memWaiting{env.store}).ListByStatus(context.Background(), post.ID, entity.WaitingStatusTimeWaiting)
	if len(waiting) != 1 || waiting[0].UserID != c {
		t.Errorf("matured = %+v, want exactly C", waiting)
	}
	if len(deferred) != 1 || deferred[0].UserID != d {
		t.Errorf("still deferred = %+v, want exactly D", deferred)
	}
}

func TestAdvanceStalePostsCategories(t *testing.T) {
	env := newTestEnv(t)
	author, b := uuid.New(), uuid.New()

	fullPost := env.createPost(t, author, 2)
	env.mustJoin(t, fullPost.ID, b)

	openStale := env.createPost(t, author, 3)

	running := env.createPost(t, author, 3)
	if _, appErr := env.svc.ToggleStatus(context.Background(), running.ID, author); appErr != nil {
		t.Fatalf("ToggleStatus: %v", appErr)
	}

	// Past start plus the 60 minute grace period.
	env.advance(4 * time.Hour)
	if err := env.svc.AdvanceStalePosts(context.Background()); err != nil {
		t.Fatalf("AdvanceStalePosts: %v", err)
	}

	if got := env.post(t, fullPost.ID).Status; got != entity.PostStatusInProgress {
		t.Errorf("full post = %s, want in_progress", got)
	}
	if got := env.post(t, openStale.ID).Status; got != entity.PostStatusExpired {
		t.Errorf("stale open post = %s, want expired", got)
	}
	if got := env.post(t, running.ID).Status; got != entity.PostStatusCompleted {
		t.Errorf("stale running post = %s, want completed", got)
	}
}

func TestAdvanceStalePostsOneStepPerPass(t *testing.T) {
	env := newTestEnv(t)
	author, b := uuid.New(), uuid.New()
	post := env.createPost(t, author, 2)
	env.mustJoin(t, post.ID, b)

	// Well past start and grace, but a full post must only start this pass,
	// not start and complete in one sweep.
	env.advance(4 * time.Hour)
	if err := env.svc.AdvanceStalePosts(context.Background()); err != nil {
		t.Fatalf("AdvanceStalePosts: %v", err)
	}
	if got := env.post(t, post.ID).Status; got != entity.PostStatusInProgress {
		t.Fatalf("after first pass = %s, want in_progress", got)
	}

	if err := env.svc.AdvanceStalePosts(context.Background()); err != nil {
		t.Fatalf("second AdvanceStalePosts: %v", err)
	}
	if got := env.post(t, post.ID).Status; got != entity.PostStatusCompleted {
		t.Errorf("after second pass = %s, want completed", got)
	}
}

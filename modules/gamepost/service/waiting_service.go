package service

import (
	"context"
	"fmt"
	"time"

	"gclub-api/core/errors"
	"gclub-api/core/logger"
	"gclub-api/modules/gamepost/dto"
	"gclub-api/modules/gamepost/entity"
	"gclub-api/modules/gamepost/repository"

	"github.com/google/uuid"
)

// RequestWait registers userID in the post's queue. With no available time the
// entry is plain WAITING; with one it is TIME_WAITING until the sweep matures
// it. A repeat request overwrites the existing registration in place, except
// an INVITED entry, which holds a live seat offer and must be answered first.
func (s *RecruitService) RequestWait(ctx context.Context, postID, userID uuid.UUID, req *dto.RequestWaitRequest) (*dto.WaitAckResponse, *errors.AppError) {
	now := s.clock()
	var resp *dto.WaitAckResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}

		switch post.Status {
		case entity.PostStatusOpen, entity.PostStatusFull, entity.PostStatusInProgress:
		default:
			return invalidState(post.Status, "request a wait")
		}
		if post.AuthorID == userID {
			return errors.NewAppError(errors.ErrForbidden, "the author cannot wait on their own post", nil)
		}

		active, err := r.Participants.GetActiveByPostAndUser(ctx, postID, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to check membership", err)
		}
		if active != nil {
			return errors.NewAppError(errors.ErrAlreadyExists, "already participating", nil)
		}

		status := entity.WaitingStatusWaiting
		var availableTime *time.Time
		if req != nil && req.AvailableTime != nil {
			// A deferred registration only makes sense for someone who
			// frees up after the session has begun.
			if !req.AvailableTime.After(post.StartTime) {
				return errors.NewAppError(errors.ErrInvalidInput, "available time must be after the session start", nil)
			}
			t := *req.AvailableTime
			availableTime = &t
			status = entity.WaitingStatusTimeWaiting
		} else if post.Recruiting() {
			// While recruiting, an immediate wait is only meaningful once
			// the roster is full; otherwise the user should just join.
			count, err := r.Participants.CountActive(ctx, postID)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "failed to count participants", err)
			}
			if count < post.Capacity {
				return errors.NewAppError(errors.ErrInvalidState, "seats are available; join instead of waiting", nil)
			}
		}

		existing, err := r.Waiting.GetOpenByPostAndUser(ctx, postID, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to check waiting entry", err)
		}

		var entry *entity.WaitingEntry
		if existing != nil {
			if existing.Status == entity.WaitingStatusInvited {
				return errors.NewAppError(errors.ErrAlreadyExists, "a seat offer is pending; accept or cancel it first", nil)
			}
			existing.Status = status
			existing.AvailableTime = availableTime
			existing.RequestedAt = now
			if err := r.Waiting.Update(ctx, existing); err != nil {
				return errors.NewAppError(errors.ErrUpdateFailed, "failed to update waiting entry", err)
			}
			entry = existing
		} else {
			entry = &entity.WaitingEntry{
				PostID:        postID,
				UserID:        userID,
				Status:        status,
				AvailableTime: availableTime,
				RequestedAt:   now,
			}
			if err := r.Waiting.Create(ctx, entry); err != nil {
				return errors.NewAppError(errors.ErrCreateFailed, "failed to create waiting entry", err)
			}
		}

		resp = &dto.WaitAckResponse{EntryID: entry.ID, Status: entry.Status}
		if entry.Status == entity.WaitingStatusWaiting {
			queue, err := r.Waiting.ListByStatus(ctx, postID, entity.WaitingStatusWaiting)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "failed to read waiting queue", err)
			}
			for i, e := range queue {
				if e.ID == entry.ID {
					resp.Position = i + 1
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return resp, nil
}

// CancelWait withdraws the caller's own registration. The entry is kept as
// CANCELED rather than deleted; canceling an already-canceled or missing
// registration is a no-op.
func (s *RecruitService) CancelWait(ctx context.Context, postID, entryID, userID uuid.UUID) *errors.AppError {
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		entry, err := r.Waiting.GetByID(ctx, entryID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get waiting entry", err)
		}
		if entry == nil || entry.PostID != postID {
			return nil
		}
		if entry.UserID != userID {
			return errors.NewAppError(errors.ErrForbidden, "only the owner can cancel a waiting entry", nil)
		}
		if entry.Status == entity.WaitingStatusCanceled {
			return nil
		}
		if err := r.Waiting.UpdateStatus(ctx, entryID, entity.WaitingStatusCanceled); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to cancel waiting entry", err)
		}
		return nil
	})
	return asAppError(err)
}

// AcceptInvite claims a mid-session seat offer. The capacity is re-checked
// under the post lock: losing the race reverts the entry to WAITING (the
// revert is committed) and reports the conflict to the caller.
func (s *RecruitService) AcceptInvite(ctx context.Context, postID, entryID, userID uuid.UUID) (*dto.JoinResponse, *errors.AppError) {
	now := s.clock()
	var resp *dto.JoinResponse
	var raceLost *errors.AppError
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		raceLost = nil

		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if post.Status != entity.PostStatusInProgress {
			return invalidState(post.Status, "accept a seat offer")
		}

		entry, err := r.Waiting.GetByID(ctx, entryID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get waiting entry", err)
		}
		if entry == nil || entry.PostID != postID {
			return errors.NewAppError(errors.ErrNotFound, "waiting entry not found", nil)
		}
		if entry.UserID != userID {
			return errors.NewAppError(errors.ErrForbidden, "only the invited user can accept", nil)
		}
		if entry.Status != entity.WaitingStatusInvited {
			return errors.NewAppError(errors.ErrInvalidState, "no pending seat offer for this entry", nil)
		}

		count, err := r.Participants.CountActive(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to count participants", err)
		}
		if count >= post.Capacity {
			// Someone else claimed the seat first. Put the entry back in
			// the queue and let this transaction commit so the revert
			// sticks.
			if err := r.Waiting.UpdateStatus(ctx, entryID, entity.WaitingStatusWaiting); err != nil {
				return errors.NewAppError(errors.ErrUpdateFailed, "failed to requeue waiting entry", err)
			}
			raceLost = errors.NewAppError(errors.ErrCapacityExceeded, "the seat was already taken", nil)
			return nil
		}

		if err := r.Waiting.Delete(ctx, entryID); err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "failed to consume waiting entry", err)
		}
		participant, err := seatUser(ctx, r, postID, userID, now)
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "failed to seat invited user", err)
		}

		if err := recomputeAndPersist(ctx, r, post); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to recompute state", err)
		}
		resp = &dto.JoinResponse{Participant: *participant, PostStatus: post.Status}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	if raceLost != nil {
		return nil, raceLost
	}
	return resp, nil
}

// WaitingQueue lists the open entries of a post, plain WAITING first in FIFO
// order, then TIME_WAITING and INVITED.
func (s *RecruitService) WaitingQueue(ctx context.Context, postID uuid.UUID) ([]entity.WaitingEntry, *errors.AppError) {
	var out []entity.WaitingEntry
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByID(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		for _, status := range []entity.WaitingStatus{
			entity.WaitingStatusWaiting,
			entity.WaitingStatusTimeWaiting,
			entity.WaitingStatusInvited,
		} {
			entries, err := r.Waiting.ListByStatus(ctx, postID, status)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "failed to list waiting entries", err)
			}
			out = append(out, entries...)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return out, nil
}

// ===================== Scheduled sweeps =====================

// PromoteDueTimeWaiting matures TIME_WAITING entries whose available time has
// arrived. Runs on a schedule; maturation only changes eligibility, seats are
// assigned by the normal promotion path.
func (s *RecruitService) PromoteDueTimeWaiting(ctx context.Context) error {
	now := s.clock()
	return s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		n, err := r.Waiting.PromoteDue(ctx, now)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("RecruitService:PromoteDueTimeWaiting", "matured", n)
		}
		return nil
	})
}

// AdvanceStalePosts moves posts forward on the clock: FULL posts whose start
// time arrived begin, sessions running past their grace period complete, and
// OPEN posts left past the grace period expire. Each post advances in its own
// unit of work so one failure does not block the rest.
func (s *RecruitService) AdvanceStalePosts(ctx context.Context) error {
	now := s.clock()
	cutoff := now.Add(-s.gracePeriod)

	type step struct {
		ids  []uuid.UUID
		next entity.PostStatus
		want func(entity.PostStatus) bool
	}
	var steps []step

	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		startDue, err := r.Posts.ListStartDue(ctx, now)
		if err != nil {
			return err
		}
		inProgressStale, err := r.Posts.ListInProgressStale(ctx, cutoff)
		if err != nil {
			return err
		}
		openStale, err := r.Posts.ListOpenStale(ctx, cutoff)
		if err != nil {
			return err
		}
		steps = []step{
			{startDue, entity.PostStatusInProgress, func(s entity.PostStatus) bool { return s == entity.PostStatusFull }},
			{inProgressStale, entity.PostStatusCompleted, func(s entity.PostStatus) bool { return s == entity.PostStatusInProgress }},
			{openStale, entity.PostStatusExpired, func(s entity.PostStatus) bool { return s == entity.PostStatusOpen }},
		}
		return nil
	})
	if err != nil {
		return err
	}

	var failed int
	for _, st := range steps {
		for _, id := range st.ids {
			if err := s.advancePost(ctx, id, st.next, st.want); err != nil {
				failed++
				logger.Error("RecruitService:AdvanceStalePosts", "post_id", id, "target", st.next, "error", err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("advance sweep: %d post(s) failed", failed)
	}
	return nil
}

// advancePost re-checks the post's status under its lock before moving it;
// the snapshot taken by the sweep may be stale by the time we get here.
func (s *RecruitService) advancePost(ctx context.Context, postID uuid.UUID, next entity.PostStatus, want func(entity.PostStatus) bool) error {
	return s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil || !want(post.Status) {
			return nil
		}
		return r.Posts.UpdateState(ctx, postID, next, post.IsFull)
	})
}

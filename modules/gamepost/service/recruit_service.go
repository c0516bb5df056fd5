package service

import (
	"context"
	"fmt"
	"time"

	"gclub-api/core/constants"
	"gclub-api/core/errors"
	"gclub-api/core/logger"
	"gclub-api/core/params"
	"gclub-api/core/utils"
	"gclub-api/modules/gamepost/dto"
	"gclub-api/modules/gamepost/entity"
	"gclub-api/modules/gamepost/repository"
	notifDto "gclub-api/modules/notification/dto"
	notifEntity "gclub-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Notifier is the slice of the notification service the engine needs.
type Notifier interface {
	Create(ctx context.Context, req *notifDto.CreateNotificationRequest) error
}

// ModeratorChecker answers whether a user may act on posts they don't own.
type ModeratorChecker interface {
	IsModerator(ctx context.Context, id uuid.UUID) (bool, error)
}

// RecruitService is the recruitment engine: the only component that mutates
// a post, its roster and its waiting queue, always together inside one unit
// of work.
type RecruitService struct {
	uow         repository.UnitOfWork
	notifier    Notifier
	auth        ModeratorChecker
	clock       func() time.Time
	gracePeriod time.Duration
}

func NewRecruitService(uow repository.UnitOfWork, notifier Notifier, auth ModeratorChecker, gracePeriodMinutes int) *RecruitService {
	if gracePeriodMinutes <= 0 {
		gracePeriodMinutes = constants.DefaultGracePeriodMinutes
	}
	return &RecruitService{
		uow:         uow,
		notifier:    notifier,
		auth:        auth,
		clock:       time.Now,
		gracePeriod: time.Duration(gracePeriodMinutes) * time.Minute,
	}
}

type capability int

const (
	capabilityOther capability = iota
	capabilityAuthor
	capabilityModerator
)

func (s *RecruitService) capabilityFor(ctx context.Context, post *entity.GamePost, actorID uuid.UUID) capability {
	if post.AuthorID == actorID {
		return capabilityAuthor
	}
	if s.auth != nil {
		ok, err := s.auth.IsModerator(ctx, actorID)
		if err != nil {
			logger.Error("RecruitService:capabilityFor:IsModerator", err)
			return capabilityOther
		}
		if ok {
			return capabilityModerator
		}
	}
	return capabilityOther
}

func asAppError(err error) *errors.AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*errors.AppError); ok {
		return ae
	}
	return errors.NewAppError(errors.ErrInternalServer, "unexpected error", err)
}

func invalidState(status entity.PostStatus, op string) *errors.AppError {
	return errors.NewAppError(errors.ErrInvalidState,
		fmt.Sprintf("cannot %s while post is %s", op, status), nil)
}

// dispatch delivers queued notifications after the unit of work committed.
// Delivery failures are logged, never surfaced: the roster mutation already
// happened.
func (s *RecruitService) dispatch(ctx context.Context, pending []*notifDto.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	for _, n := range pending {
		if err := s.notifier.Create(ctx, n); err != nil {
			logger.Error("RecruitService:dispatch:Create", "user_id", n.UserID, "type", n.Type, "error", err)
		}
	}
}

// recomputeAndPersist re-derives the seat-dependent state from the roster and
// writes it back when it changed. Runs at the end of every mutation, inside
// the same transaction.
func recomputeAndPersist(ctx context.Context, r repository.Repos, post *entity.GamePost) error {
	count, err := r.Participants.CountActive(ctx, post.ID)
	if err != nil {
		return err
	}
	newStatus, isFull := entity.RecomputeSeatState(post.Status, count, post.Capacity)
	if newStatus != post.Status || isFull != post.IsFull {
		if err := r.Posts.UpdateState(ctx, post.ID, newStatus, isFull); err != nil {
			return err
		}
		post.Status, post.IsFull = newStatus, isFull
	}
	return nil
}

// seatUser puts userID on the roster, reactivating a LEFT_EARLY row instead
// of inserting a duplicate.
func seatUser(ctx context.Context, r repository.Repos, postID, userID uuid.UUID, now time.Time) (*entity.Participant, error) {
	existing, err := r.Participants.GetLatestByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == entity.ParticipantStatusLeftEarly {
		if err := r.Participants.Reactivate(ctx, existing.ID, now); err != nil {
			return nil, err
		}
		existing.Status = entity.ParticipantStatusActive
		existing.IsLeader = false
		existing.JoinedAt = now
		existing.LeftAt = nil
		return existing, nil
	}

	participant := &entity.Participant{
		PostID:   postID,
		UserID:   &userID,
		Status:   entity.ParticipantStatusActive,
		JoinedAt: now,
	}
	if err := r.Participants.Create(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// ===================== Post lifecycle =====================

func (s *RecruitService) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostDetailResponse, *errors.AppError) {
	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if req.Capacity < constants.PostCapacityMin || req.Capacity > constants.PostCapacityMax {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("capacity must be between %d and %d", constants.PostCapacityMin, constants.PostCapacityMax), nil)
	}
	now := s.clock()
	if !req.StartTime.After(now) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start time must be in the future", nil)
	}

	var resp *dto.PostDetailResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post := &entity.GamePost{
			AuthorID:  authorID,
			Title:     req.Title,
			Slug:      slug.Make(req.Title) + "-" + utils.GenerateID(),
			ShareCode: utils.GenerateShareCode(),
			Content:   req.Content,
			Capacity:  req.Capacity,
			StartTime: req.StartTime,
			Status:    entity.PostStatusOpen,
			IsFull:    false,
		}
		if err := r.Posts.Create(ctx, post); err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "failed to create post", err)
		}

		// The author holds the first seat and leads the session.
		author := &entity.Participant{
			PostID:   post.ID,
			UserID:   &authorID,
			IsLeader: true,
			Status:   entity.ParticipantStatusActive,
			JoinedAt: now,
		}
		if err := r.Participants.Create(ctx, author); err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "failed to seat author", err)
		}

		if err := recomputeAndPersist(ctx, r, post); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to recompute state", err)
		}

		resp = &dto.PostDetailResponse{
			Post:         *post,
			Participants: []entity.Participant{*author},
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return resp, nil
}

func (s *RecruitService) GetPost(ctx context.Context, postID uuid.UUID) (*dto.PostDetailResponse, *errors.AppError) {
	var resp *dto.PostDetailResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByID(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}

		participants, err := r.Participants.ListActive(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to list participants", err)
		}
		waiting, err := r.Waiting.ListByStatus(ctx, postID, entity.WaitingStatusWaiting)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to list waiting entries", err)
		}

		resp = &dto.PostDetailResponse{
			Post:         *post,
			Participants: participants,
			WaitingCount: len(waiting),
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return resp, nil
}

func (s *RecruitService) ListPosts(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedPostEntity, *errors.AppError) {
	var page *entity.PaginatedPostEntity
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		var err error
		page, err = r.Posts.List(ctx, queryParams)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to list posts", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return page, nil
}

// ToggleStatus applies the author's manual transition table:
// OPEN/FULL -> IN_PROGRESS -> COMPLETED -> OPEN. EXPIRED has no manual edge.
func (s *RecruitService) ToggleStatus(ctx context.Context, postID, actorID uuid.UUID) (*dto.ToggleStatusResponse, *errors.AppError) {
	now := s.clock()
	var resp *dto.ToggleStatusResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if s.capabilityFor(ctx, post, actorID) != capabilityAuthor {
			return errors.NewAppError(errors.ErrForbidden, "only the author can change the post status", nil)
		}

		next, ok := entity.NextToggleStatus(post.Status)
		if !ok {
			return invalidState(post.Status, "toggle status")
		}
		// A session may be started manually only before (or at) its
		// scheduled time, unless the roster already filled; late full posts
		// are the sweep's territory but the author may start them too.
		if next == entity.PostStatusInProgress && now.After(post.StartTime) && !post.IsFull {
			return invalidState(post.Status, "start a session after its scheduled time")
		}

		count, err := r.Participants.CountActive(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to count participants", err)
		}
		status, isFull := entity.RecomputeSeatState(next, count, post.Capacity)
		if err := r.Posts.UpdateState(ctx, postID, status, isFull); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to update status", err)
		}

		resp = &dto.ToggleStatusResponse{Status: status}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return resp, nil
}

// CloseRecruitment abandons an OPEN post without starting it.
func (s *RecruitService) CloseRecruitment(ctx context.Context, postID, actorID uuid.UUID) (*dto.ToggleStatusResponse, *errors.AppError) {
	var resp *dto.ToggleStatusResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if s.capabilityFor(ctx, post, actorID) != capabilityAuthor {
			return errors.NewAppError(errors.ErrForbidden, "only the author can close recruitment", nil)
		}
		if post.Status != entity.PostStatusOpen {
			return invalidState(post.Status, "close recruitment")
		}

		if err := r.Posts.UpdateState(ctx, postID, entity.PostStatusExpired, post.IsFull); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to close recruitment", err)
		}
		resp = &dto.ToggleStatusResponse{Status: entity.PostStatusExpired}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return resp, nil
}

// DeletePost removes the post; roster and queue cascade with it.
func (s *RecruitService) DeletePost(ctx context.Context, postID, actorID uuid.UUID) *errors.AppError {
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if s.capabilityFor(ctx, post, actorID) == capabilityOther {
			return errors.NewAppError(errors.ErrForbidden, "only the author or a moderator can delete the post", nil)
		}

		if err := r.Posts.Delete(ctx, postID); err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete post", err)
		}
		return nil
	})
	return asAppError(err)
}

// ===================== Roster =====================

func (s *RecruitService) Join(ctx context.Context, postID, userID uuid.UUID) (*dto.JoinResponse, *errors.AppError) {
	now := s.clock()
	var resp *dto.JoinResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if post.AuthorID == userID {
			return errors.NewAppError(errors.ErrAlreadyExists, "the author is already seated", nil)
		}
		switch post.Status {
		case entity.PostStatusOpen:
		case entity.PostStatusFull:
			return errors.NewAppError(errors.ErrCapacityExceeded, "post is full", nil)
		default:
			return invalidState(post.Status, "join")
		}

		active, err := r.Participants.GetActiveByPostAndUser(ctx, postID, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to check membership", err)
		}
		if active != nil {
			return errors.NewAppError(errors.ErrAlreadyExists, "already participating", nil)
		}

		count, err := r.Participants.CountActive(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to count participants", err)
		}
		if count >= post.Capacity {
			return errors.NewAppError(errors.ErrCapacityExceeded, "post is full", nil)
		}

		// Seating consumes any open waiting registration; a roster member
		// must not also hold a queue place.
		if entry, err := r.Waiting.GetOpenByPostAndUser(ctx, postID, userID); err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to check waiting entry", err)
		} else if entry != nil {
			if err := r.Waiting.Delete(ctx, entry.ID); err != nil {
				return errors.NewAppError(errors.ErrDeleteFailed, "failed to consume waiting entry", err)
			}
		}

		participant, err := seatUser(ctx, r, postID, userID, now)
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "failed to join", err)
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
	return resp, nil
}

// Leave is pre-session cancellation. The freed seat is backfilled from the
// queue when possible; leadership passes to the longest-tenured member when
// the leader departs.
func (s *RecruitService) Leave(ctx context.Context, postID, userID uuid.UUID) *errors.AppError {
	now := s.clock()
	var pending []*notifDto.CreateNotificationRequest
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		pending = pending[:0]

		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if !post.Recruiting() {
			return invalidState(post.Status, "leave")
		}
		if post.AuthorID == userID {
			return errors.NewAppError(errors.ErrForbidden, "the author cannot leave; delete the post instead", nil)
		}

		participant, err := r.Participants.GetActiveByPostAndUser(ctx, postID, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get participant", err)
		}
		if participant == nil {
			return errors.NewAppError(errors.ErrNotFound, "not participating", nil)
		}

		if err := r.Participants.Delete(ctx, participant.ID); err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "failed to leave", err)
		}

		if participant.IsLeader {
			if n, err := s.succeedLeader(ctx, r, post, participant.ID); err != nil {
				return err
			} else if n != nil {
				pending = append(pending, n)
			}
		}

		// One promotion attempt backfills the freed seat pre-session.
		if n, err := s.promoteNext(ctx, r, post, now); err != nil {
			return err
		} else if n != nil {
			pending = append(pending, n)
		}

		if err := recomputeAndPersist(ctx, r, post); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to recompute state", err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	s.dispatch(ctx, pending)
	return nil
}

// LeaveEarly is mid-session departure: the entry is kept as LEFT_EARLY and
// the freed seat is offered to every waiting user rather than silently
// assigned.
func (s *RecruitService) LeaveEarly(ctx context.Context, postID, actorID uuid.UUID, req *dto.LeaveEarlyRequest) *errors.AppError {
	now := s.clock()
	var pending []*notifDto.CreateNotificationRequest
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		pending = pending[:0]

		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if post.Status != entity.PostStatusInProgress {
			return invalidState(post.Status, "leave early")
		}

		var target *entity.Participant
		if req != nil && req.ParticipantID != nil {
			target, err = r.Participants.GetByID(ctx, *req.ParticipantID)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "failed to get participant", err)
			}
			if target == nil || target.PostID != postID {
				return errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
			}
			isSelf := target.BelongsTo(actorID)
			if !isSelf && s.capabilityFor(ctx, post, actorID) != capabilityAuthor {
				return errors.NewAppError(errors.ErrForbidden, "only the author can remove another participant", nil)
			}
		} else {
			target, err = r.Participants.GetActiveByPostAndUser(ctx, postID, actorID)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "failed to get participant", err)
			}
			if target == nil {
				return errors.NewAppError(errors.ErrNotFound, "not participating", nil)
			}
		}
		if !target.Active() {
			return errors.NewAppError(errors.ErrInvalidState, "participant already left", nil)
		}
		if target.BelongsTo(post.AuthorID) {
			return errors.NewAppError(errors.ErrForbidden, "the author cannot leave their own session", nil)
		}

		if err := r.Participants.MarkLeftEarly(ctx, target.ID, now); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark departure", err)
		}

		if target.IsLeader {
			if n, err := s.succeedLeader(ctx, r, post, target.ID); err != nil {
				return err
			} else if n != nil {
				pending = append(pending, n)
			}
		}

		if err := recomputeAndPersist(ctx, r, post); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to recompute state", err)
		}

		// Broadcast offer: every WAITING user gets invited, the first to
		// accept wins the seat.
		userIDs, err := r.Waiting.MarkAllInvited(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to invite waiting users", err)
		}
		for _, id := range userIDs {
			pending = append(pending, &notifDto.CreateNotificationRequest{
				UserID:  id,
				Title:   "A seat opened up",
				Message: fmt.Sprintf("A participant left %q mid-session. Accept the invitation to take the seat.", post.Title),
				Type:    notifEntity.TypeSeatInvite,
				Data:    map[string]interface{}{"post_id": post.ID.String()},
			})
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	s.dispatch(ctx, pending)
	return nil
}

// AddGuest seats an unregistered player by name, author only.
func (s *RecruitService) AddGuest(ctx context.Context, postID, actorID uuid.UUID, req *dto.AddGuestRequest) (*dto.JoinResponse, *errors.AppError) {
	if req == nil || req.GuestName == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "guest name is required", nil)
	}
	now := s.clock()
	var resp *dto.JoinResponse
	err := s.uow.Do(ctx, func(ctx context.Context, r repository.Repos) error {
		post, err := r.Posts.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to get post", err)
		}
		if post == nil {
			return errors.NewAppError(errors.ErrNotFound, "post not found", nil)
		}
		if s.capabilityFor(ctx, post, actorID) != capabilityAuthor {
			return errors.NewAppError(errors.ErrForbidden, "only the author can add guests", nil)
		}
		if !post.Recruiting() {
			return invalidState(post.Status, "add a guest")
		}

		count, err := r.Participants.CountActive(ctx, postID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "failed to count participants", err)
		}
		if count >= post.Capacity {
			return errors.NewAppError(errors.ErrCapacityExceeded, "post is full", nil)
		}

		guestName := req.GuestName
		guest := &entity.Participant{
			PostID:    postID,
			GuestName: &guestName,
			Status:    entity.ParticipantStatusActive,
			JoinedAt:  now,
		}
		if err := r.Participants.Create(ctx, guest); err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "failed to add guest", err)
		}

		if err := recomputeAndPersist(ctx, r, post); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "failed to recompute state", err)
		}
		resp = &dto.JoinResponse{Participant: *guest, PostStatus: post.Status}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return resp, nil
}

// succeedLeader hands leadership to the longest-tenured remaining member.
// An emptied roster simply has no leader; the post is effectively abandoned
// and waits for the author's follow-up.
func (s *RecruitService) succeedLeader(ctx context.Context, r repository.Repos, post *entity.GamePost, leavingID uuid.UUID) (*notifDto.CreateNotificationRequest, error) {
	active, err := r.Participants.ListActive(ctx, post.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list participants", err)
	}
	next := NextLeader(active, leavingID)
	if next == nil {
		return nil, nil
	}
	if err := r.Participants.SetLeader(ctx, next.ID, true); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to set leader", err)
	}
	return &notifDto.CreateNotificationRequest{
		UserID:  *next.UserID,
		Title:   "You are now the session leader",
		Message: fmt.Sprintf("The previous leader left %q; leadership passed to you.", post.Title),
		Type:    notifEntity.TypeLeaderChanged,
		Data:    map[string]interface{}{"post_id": post.ID.String()},
	}, nil
}

// promoteNext seats the FIFO head of the plain WAITING queue, if any.
// TIME_WAITING entries are ineligible until the sweep matures them.
func (s *RecruitService) promoteNext(ctx context.Context, r repository.Repos, post *entity.GamePost, now time.Time) (*notifDto.CreateNotificationRequest, error) {
	entry, err := r.Waiting.OldestWaiting(ctx, post.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to read waiting queue", err)
	}
	if entry == nil {
		return nil, nil
	}

	// The entry is consumed by seating its user.
	if err := r.Waiting.Delete(ctx, entry.ID); err != nil {
		return nil, errors.NewAppError(errors.ErrDeleteFailed, "failed to consume waiting entry", err)
	}
	if _, err := seatUser(ctx, r, post.ID, entry.UserID, now); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to seat waiting user", err)
	}

	return &notifDto.CreateNotificationRequest{
		UserID:  entry.UserID,
		Title:   "You got a seat",
		Message: fmt.Sprintf("A seat freed up in %q and you were next in line.", post.Title),
		Type:    notifEntity.TypeSeatPromoted,
		Data:    map[string]interface{}{"post_id": post.ID.String()},
	}, nil
}

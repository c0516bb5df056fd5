package repository

import (
	"context"

	"gclub-api/core/database"
)

// Repos bundles the three repositories bound to one transaction. Post, roster
// and queue mutations for a single operation always travel together.
type Repos struct {
	Posts        PostRepositoryInterface
	Participants ParticipantRepositoryInterface
	Waiting      WaitingRepositoryInterface
}

// UnitOfWork runs fn atomically: either every mutation fn performs commits,
// or none do. The production implementation maps onto a database transaction;
// tests substitute an in-memory one.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

type unitOfWork struct {
	db *database.Database
}

func NewUnitOfWork(db *database.Database) UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return u.db.WithinTx(ctx, func(ctx context.Context, tx database.IDatabase) error {
		return fn(ctx, Repos{
			Posts:        NewPostRepository(tx),
			Participants: NewParticipantRepository(tx),
			Waiting:      NewWaitingRepository(tx),
		})
	})
}

package service

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
)

// Mutation is a named write operation plus the cache scope it dirties. The
// invalidation set must cover every resource the write is visible through,
// including keys the current session has no subscriber for.
type Mutation struct {
	Name        string
	Run         func(ctx context.Context) error
	Invalidates []cache.KeyPattern
}

// MutationExecutor is the single write path of the console. All writes are
// confirm-then-invalidate: no optimistic cache patching, so a failed write
// leaves every entry untouched and there is nothing to roll back.
type MutationExecutor interface {
	Execute(ctx context.Context, m Mutation) error
}

type mutationExecutor struct {
	cache *cache.Store
	log   *logger.Logger
}

func NewMutationExecutor(store *cache.Store, log *logger.Logger) MutationExecutor {
	return &mutationExecutor{cache: store, log: log}
}

func (e *mutationExecutor) Execute(ctx context.Context, m Mutation) error {
	if m.Run == nil {
		return ierr.NewError("mutation has no operation").
			Mark(ierr.ErrInternal)
	}

	log := e.log.WithContext(ctx)

	if err := m.Run(ctx); err != nil {
		log.Warnw("mutation failed", "mutation", m.Name, "error", err)
		return err
	}

	if len(m.Invalidates) > 0 {
		e.cache.Invalidate(m.Invalidates...)
	}
	log.Debugw("mutation applied", "mutation", m.Name, "invalidated", len(m.Invalidates))
	return nil
}

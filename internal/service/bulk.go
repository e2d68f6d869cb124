package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"github.com/vivahlink/console/internal/cache"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
)

// bulkConcurrencyCap bounds the per-id fan-out so a large selection cannot
// flood the backend.
const bulkConcurrencyCap = 10

// BulkRequest is one multi-select operation. Exactly one of RunBulk (native
// bulk endpoint, single call with the full id list) or RunEach (per-id
// fan-out) must be set.
type BulkRequest struct {
	Name        string
	IDs         []string
	Reason      string
	NeedsReason bool
	Invalidates []cache.KeyPattern

	RunBulk func(ctx context.Context, ids []string) error
	RunEach func(ctx context.Context, id string) error
}

// BulkCoordinator drives a mutation over a selection with join-all
// semantics: all-or-nothing reporting over a partial-effect reality. When a
// fan-out partially fails the caller gets a single aggregate error, already
// succeeded mutations stay applied (the backend has no rollback), and the
// resource is invalidated regardless so views converge on whatever state
// resulted. The selection is cleared and bulk mode exited either way.
type BulkCoordinator interface {
	Execute(ctx context.Context, selection *SelectionSet, req BulkRequest) error
}

type bulkCoordinator struct {
	executor MutationExecutor
	cache    *cache.Store
	log      *logger.Logger
}

func NewBulkCoordinator(executor MutationExecutor, store *cache.Store, log *logger.Logger) BulkCoordinator {
	return &bulkCoordinator{executor: executor, cache: store, log: log}
}

func (c *bulkCoordinator) Execute(ctx context.Context, selection *SelectionSet, req BulkRequest) error {
	if selection != nil {
		defer selection.ExitBulkMode()
	}

	ids := lo.Uniq(lo.Compact(req.IDs))
	if len(ids) == 0 {
		return ierr.NewError("no items selected").
			WithHint("Select at least one item").
			Mark(ierr.ErrValidation)
	}
	// Reason validation happens before anything is sent upstream.
	if req.NeedsReason && strings.TrimSpace(req.Reason) == "" {
		return ierr.NewError("a reason is required for this action").
			WithHint("Provide a reason to continue").
			Mark(ierr.ErrValidation)
	}

	if req.RunBulk != nil {
		return c.executor.Execute(ctx, Mutation{
			Name:        req.Name,
			Run:         func(ctx context.Context) error { return req.RunBulk(ctx, ids) },
			Invalidates: req.Invalidates,
		})
	}
	if req.RunEach == nil {
		return ierr.NewError("bulk request has no operation").
			Mark(ierr.ErrInternal)
	}

	p := pool.New().
		WithErrors().
		WithFirstError().
		WithMaxGoroutines(bulkConcurrencyCap)

	for _, id := range ids {
		id := id
		p.Go(func() error {
			if err := req.RunEach(ctx, id); err != nil {
				c.log.WithContext(ctx).Warnw("bulk item failed",
					"operation", req.Name, "id", id, "error", err)
				return err
			}
			return nil
		})
	}
	err := p.Wait()

	// Invalidate even on failure: some ids may have been applied and the
	// views must refetch to show the partial result.
	if len(req.Invalidates) > 0 {
		c.cache.Invalidate(req.Invalidates...)
	}

	if err != nil {
		return ierr.WithError(err).
			WithHintf("%s failed for one or more selected items", req.Name).
			WithReportableDetails(map[string]interface{}{
				"operation": req.Name,
				"selected":  len(ids),
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

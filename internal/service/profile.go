package service

import (
	"context"
	"strings"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/domain/profile"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// ProfileService covers the non-verification moderation surface of
// profiles: visibility, blocking, soft delete and restore, in both single
// and bulk form.
type ProfileService interface {
	List(ctx context.Context, filter *types.ProfileFilter) (*profile.ListResult, error)
	ListDeleted(ctx context.Context, filter *types.DeletedProfileFilter) (*profile.ListResult, error)
	Get(ctx context.Context, id string) (*profile.Profile, error)

	SetActive(ctx context.Context, id string, active bool) error
	Block(ctx context.Context, id, reason string) error
	Unblock(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// Restore is idempotent: restoring an already-active profile succeeds
	// without touching anything, so duplicate restores from concurrent
	// admin sessions are harmless.
	Restore(ctx context.Context, id string) error

	Bulk(ctx context.Context, selection *SelectionSet, action types.BulkAction, ids []string, reason string) error
}

type profileService struct {
	ServiceParams
	executor MutationExecutor
	bulk     BulkCoordinator
}

func NewProfileService(params ServiceParams, executor MutationExecutor, bulk BulkCoordinator) ProfileService {
	return &profileService{ServiceParams: params, executor: executor, bulk: bulk}
}

func profileInvalidations() []cache.KeyPattern {
	return []cache.KeyPattern{
		cache.PatternFor(cache.ResourceProfiles),
		cache.PatternFor(cache.ResourceStats),
	}
}

// softDeleteInvalidations additionally covers the deleted set, which
// delete/restore move profiles across.
func softDeleteInvalidations() []cache.KeyPattern {
	return append(profileInvalidations(), cache.PatternFor(cache.ResourceDeletedProfiles))
}

func (s *profileService) List(ctx context.Context, filter *types.ProfileFilter) (*profile.ListResult, error) {
	if filter == nil {
		filter = types.NewProfileFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return readThrough[profile.ListResult](ctx, s.Cache, profile.ListKey(filter), func(ctx context.Context) (any, error) {
		return s.ProfileRepo.List(ctx, filter)
	})
}

func (s *profileService) ListDeleted(ctx context.Context, filter *types.DeletedProfileFilter) (*profile.ListResult, error) {
	if filter == nil {
		filter = types.NewDeletedProfileFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return readThrough[profile.ListResult](ctx, s.Cache, profile.DeletedListKey(filter), func(ctx context.Context) (any, error) {
		return s.ProfileRepo.ListDeleted(ctx, filter)
	})
}

func (s *profileService) Get(ctx context.Context, id string) (*profile.Profile, error) {
	if id == "" {
		return nil, ierr.NewError("profile ID is required").
			WithHint("Please provide a valid profile ID").
			Mark(ierr.ErrValidation)
	}

	return readThrough[profile.Profile](ctx, s.Cache, profile.DetailKey(id), func(ctx context.Context) (any, error) {
		return s.ProfileRepo.Get(ctx, id)
	})
}

func (s *profileService) SetActive(ctx context.Context, id string, active bool) error {
	name := "profile.deactivate"
	call := s.ProfileRepo.Deactivate
	if active {
		name = "profile.activate"
		call = s.ProfileRepo.Activate
	}

	return s.executor.Execute(ctx, Mutation{
		Name:        name,
		Run:         func(ctx context.Context) error { return call(ctx, id) },
		Invalidates: profileInvalidations(),
	})
}

func (s *profileService) Block(ctx context.Context, id, reason string) error {
	if err := requireReason(reason, "blocking a profile"); err != nil {
		return err
	}
	return s.executor.Execute(ctx, Mutation{
		Name:        "profile.block",
		Run:         func(ctx context.Context) error { return s.ProfileRepo.Block(ctx, id, reason) },
		Invalidates: profileInvalidations(),
	})
}

func (s *profileService) Unblock(ctx context.Context, id string) error {
	return s.executor.Execute(ctx, Mutation{
		Name:        "profile.unblock",
		Run:         func(ctx context.Context) error { return s.ProfileRepo.Unblock(ctx, id) },
		Invalidates: profileInvalidations(),
	})
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	return s.executor.Execute(ctx, Mutation{
		Name:        "profile.delete",
		Run:         func(ctx context.Context) error { return s.ProfileRepo.Delete(ctx, id) },
		Invalidates: softDeleteInvalidations(),
	})
}

func (s *profileService) Restore(ctx context.Context, id string) error {
	return s.executor.Execute(ctx, Mutation{
		Name: "profile.restore",
		Run: func(ctx context.Context) error {
			err := s.ProfileRepo.Restore(ctx, id)
			// The backend answers 404/409 for an id that is already
			// active; both mean the desired state already holds.
			if err != nil && (ierr.IsNotFound(err) || ierr.IsInvalidOperation(err)) {
				s.Logger.WithContext(ctx).Debugw("restore no-op, profile already active", "profile_id", id)
				return nil
			}
			return err
		},
		Invalidates: softDeleteInvalidations(),
	})
}

// Bulk routes a multi-select action. Delete/restore use the backend's
// native bulk endpoints; activate/deactivate/block/unblock have none and
// fan out per id.
func (s *profileService) Bulk(ctx context.Context, selection *SelectionSet, action types.BulkAction, ids []string, reason string) error {
	if err := action.Validate(); err != nil {
		return err
	}

	req := BulkRequest{
		Name:        "profiles." + string(action),
		IDs:         ids,
		Reason:      reason,
		NeedsReason: action.RequiresReason(),
		Invalidates: profileInvalidations(),
	}

	switch action {
	case types.BulkActionDelete:
		req.Invalidates = softDeleteInvalidations()
		req.RunBulk = s.ProfileRepo.BulkDelete
	case types.BulkActionRestore:
		req.Invalidates = softDeleteInvalidations()
		req.RunBulk = s.ProfileRepo.BulkRestore
	case types.BulkActionActivate:
		req.RunEach = s.ProfileRepo.Activate
	case types.BulkActionDeactivate:
		req.RunEach = s.ProfileRepo.Deactivate
	case types.BulkActionBlock:
		req.RunEach = func(ctx context.Context, id string) error {
			return s.ProfileRepo.Block(ctx, id, reason)
		}
	case types.BulkActionUnblock:
		req.RunEach = s.ProfileRepo.Unblock
	default:
		return ierr.NewErrorf("bulk %s is not supported for profiles", action).
			WithHint("Unsupported bulk action for profiles").
			Mark(ierr.ErrValidation)
	}

	return s.bulk.Execute(ctx, selection, req)
}

func requireReason(reason, what string) error {
	if strings.TrimSpace(reason) == "" {
		return ierr.NewErrorf("a reason is required for %s", what).
			WithHint("Provide a reason to continue").
			Mark(ierr.ErrValidation)
	}
	return nil
}

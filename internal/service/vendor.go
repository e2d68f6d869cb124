package service

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/domain/vendor"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

type VendorService interface {
	List(ctx context.Context, filter *types.VendorFilter) (*vendor.ListResult, error)
	Get(ctx context.Context, id string) (*vendor.Vendor, error)

	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
	SetActive(ctx context.Context, id string, active bool) error

	Bulk(ctx context.Context, selection *SelectionSet, action types.BulkAction, ids []string, reason string) error
}

type vendorService struct {
	ServiceParams
	executor MutationExecutor
	bulk     BulkCoordinator
}

func NewVendorService(params ServiceParams, executor MutationExecutor, bulk BulkCoordinator) VendorService {
	return &vendorService{ServiceParams: params, executor: executor, bulk: bulk}
}

func vendorInvalidations() []cache.KeyPattern {
	return []cache.KeyPattern{
		cache.PatternFor(cache.ResourceVendors),
		cache.PatternFor(cache.ResourceStats),
	}
}

func (s *vendorService) List(ctx context.Context, filter *types.VendorFilter) (*vendor.ListResult, error) {
	if filter == nil {
		filter = types.NewVendorFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return readThrough[vendor.ListResult](ctx, s.Cache, vendor.ListKey(filter), func(ctx context.Context) (any, error) {
		return s.VendorRepo.List(ctx, filter)
	})
}

func (s *vendorService) Get(ctx context.Context, id string) (*vendor.Vendor, error) {
	if id == "" {
		return nil, ierr.NewError("vendor ID is required").
			WithHint("Please provide a valid vendor ID").
			Mark(ierr.ErrValidation)
	}

	return readThrough[vendor.Vendor](ctx, s.Cache, vendor.DetailKey(id), func(ctx context.Context) (any, error) {
		return s.VendorRepo.Get(ctx, id)
	})
}

func (s *vendorService) Approve(ctx context.Context, id string) error {
	if !types.IsModerator(ctx) {
		return ierr.NewError("approving vendors requires moderation capability").
			WithHint("You are not allowed to approve vendors").
			Mark(ierr.ErrPermissionDenied)
	}

	return s.executor.Execute(ctx, Mutation{
		Name:        "vendor.approve",
		Run:         func(ctx context.Context) error { return s.VendorRepo.Approve(ctx, id) },
		Invalidates: vendorInvalidations(),
	})
}

func (s *vendorService) Reject(ctx context.Context, id, reason string) error {
	if err := requireReason(reason, "rejecting a vendor"); err != nil {
		return err
	}
	return s.executor.Execute(ctx, Mutation{
		Name:        "vendor.reject",
		Run:         func(ctx context.Context) error { return s.VendorRepo.Reject(ctx, id, reason) },
		Invalidates: vendorInvalidations(),
	})
}

func (s *vendorService) SetActive(ctx context.Context, id string, active bool) error {
	name := "vendor.deactivate"
	call := s.VendorRepo.Deactivate
	if active {
		name = "vendor.activate"
		call = s.VendorRepo.Activate
	}

	return s.executor.Execute(ctx, Mutation{
		Name:        name,
		Run:         func(ctx context.Context) error { return call(ctx, id) },
		Invalidates: vendorInvalidations(),
	})
}

// Bulk fans out per id; vendors have no native bulk endpoints.
func (s *vendorService) Bulk(ctx context.Context, selection *SelectionSet, action types.BulkAction, ids []string, reason string) error {
	if err := action.Validate(); err != nil {
		return err
	}

	req := BulkRequest{
		Name:        "vendors." + string(action),
		IDs:         ids,
		Reason:      reason,
		NeedsReason: action.RequiresReason(),
		Invalidates: vendorInvalidations(),
	}

	switch action {
	case types.BulkActionApprove:
		req.RunEach = s.VendorRepo.Approve
	case types.BulkActionReject:
		req.RunEach = func(ctx context.Context, id string) error {
			return s.VendorRepo.Reject(ctx, id, reason)
		}
	case types.BulkActionActivate:
		req.RunEach = s.VendorRepo.Activate
	case types.BulkActionDeactivate:
		req.RunEach = s.VendorRepo.Deactivate
	default:
		return ierr.NewErrorf("bulk %s is not supported for vendors", action).
			WithHint("Unsupported bulk action for vendors").
			Mark(ierr.ErrValidation)
	}

	return s.bulk.Execute(ctx, selection, req)
}

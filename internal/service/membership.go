package service

import (
	"context"

	"github.com/h2non/filetype"

	"github.com/vivahlink/console/internal/domain/membership"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

// MembershipService drives the membership lifecycle. Approving a membership
// changes what the affected end-user's own session sees, so every lifecycle
// mutation invalidates the unscoped current-subscription key on top of the
// admin-facing membership resources.
type MembershipService interface {
	List(ctx context.Context, filter *types.MembershipFilter) (*membership.ListResult, error)
	ListPending(ctx context.Context, filter *types.MembershipFilter) (*membership.ListResult, error)
	Get(ctx context.Context, id string) (*membership.Membership, error)
	Stats(ctx context.Context) (*membership.Stats, error)

	Approve(ctx context.Context, id string, paymentMethod types.PaymentMethod, receipt *types.CashReceipt) (*membership.Membership, error)
	Reject(ctx context.Context, id, reason string) (*membership.Membership, error)
	Cancel(ctx context.Context, id, reason string) (*membership.Membership, error)
	Reactivate(ctx context.Context, id string) (*membership.Membership, error)

	UploadProof(ctx context.Context, id, filename string, content []byte) (*membership.Membership, error)

	BulkCancel(ctx context.Context, selection *SelectionSet, ids []string, reason string) error
}

type membershipService struct {
	ServiceParams
	executor MutationExecutor
	bulk     BulkCoordinator
}

func NewMembershipService(params ServiceParams, executor MutationExecutor, bulk BulkCoordinator) MembershipService {
	return &membershipService{ServiceParams: params, executor: executor, bulk: bulk}
}

func (s *membershipService) List(ctx context.Context, filter *types.MembershipFilter) (*membership.ListResult, error) {
	if filter == nil {
		filter = types.NewMembershipFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return readThrough[membership.ListResult](ctx, s.Cache, membership.ListKey(filter), func(ctx context.Context) (any, error) {
		return s.MembershipRepo.List(ctx, filter)
	})
}

func (s *membershipService) ListPending(ctx context.Context, filter *types.MembershipFilter) (*membership.ListResult, error) {
	if filter == nil {
		filter = types.NewMembershipFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return readThrough[membership.ListResult](ctx, s.Cache, membership.PendingKey(filter), func(ctx context.Context) (any, error) {
		return s.MembershipRepo.ListPending(ctx, filter)
	})
}

func (s *membershipService) Get(ctx context.Context, id string) (*membership.Membership, error) {
	if id == "" {
		return nil, ierr.NewError("membership ID is required").
			WithHint("Please provide a valid membership ID").
			Mark(ierr.ErrValidation)
	}
	return s.MembershipRepo.Get(ctx, id)
}

func (s *membershipService) Stats(ctx context.Context) (*membership.Stats, error) {
	return readThrough[membership.Stats](ctx, s.Cache, membership.StatsKey(), func(ctx context.Context) (any, error) {
		return s.MembershipRepo.Stats(ctx)
	})
}

// Approve moves a pending membership to approved. Cash and mixed payments
// must carry the receipt captured now, at approval time; the backend never
// sees an approval without it.
func (s *membershipService) Approve(ctx context.Context, id string, paymentMethod types.PaymentMethod, receipt *types.CashReceipt) (*membership.Membership, error) {
	current, err := s.MembershipRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := current.Status.CanTransition(types.MembershipActionApprove); err != nil {
		return nil, err
	}
	if paymentMethod.RequiresCashReceipt() {
		if err := receipt.Validate(); err != nil {
			return nil, err
		}
	} else {
		receipt = nil
	}

	var updated *membership.Membership
	err = s.executor.Execute(ctx, Mutation{
		Name: "membership.approve",
		Run: func(ctx context.Context) error {
			var err error
			updated, err = s.MembershipRepo.Approve(ctx, membership.ApprovalInput{ID: id, CashReceipt: receipt})
			return err
		},
		Invalidates: membership.LifecycleInvalidations(),
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *membershipService) Reject(ctx context.Context, id, reason string) (*membership.Membership, error) {
	return s.lifecycle(ctx, id, types.MembershipActionReject, reason, func(ctx context.Context) (*membership.Membership, error) {
		return s.MembershipRepo.Reject(ctx, id, reason)
	})
}

func (s *membershipService) Cancel(ctx context.Context, id, reason string) (*membership.Membership, error) {
	return s.lifecycle(ctx, id, types.MembershipActionCancel, reason, func(ctx context.Context) (*membership.Membership, error) {
		return s.MembershipRepo.Cancel(ctx, id, reason)
	})
}

func (s *membershipService) Reactivate(ctx context.Context, id string) (*membership.Membership, error) {
	return s.lifecycle(ctx, id, types.MembershipActionReactivate, "", func(ctx context.Context) (*membership.Membership, error) {
		return s.MembershipRepo.Reactivate(ctx, id)
	})
}

func (s *membershipService) lifecycle(
	ctx context.Context,
	id string,
	action types.MembershipAction,
	reason string,
	call func(ctx context.Context) (*membership.Membership, error),
) (*membership.Membership, error) {
	if id == "" {
		return nil, ierr.NewError("membership ID is required").
			WithHint("Please provide a valid membership ID").
			Mark(ierr.ErrValidation)
	}
	if action == types.MembershipActionReject || action == types.MembershipActionCancel {
		if err := requireReason(reason, "this membership action"); err != nil {
			return nil, err
		}
	}

	current, err := s.MembershipRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := current.Status.CanTransition(action); err != nil {
		return nil, err
	}

	var updated *membership.Membership
	err = s.executor.Execute(ctx, Mutation{
		Name: "membership." + string(action),
		Run: func(ctx context.Context) error {
			var err error
			updated, err = call(ctx)
			return err
		},
		Invalidates: membership.LifecycleInvalidations(),
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UploadProof sniffs the payment proof before forwarding it as an opaque
// multipart payload. Only images and PDFs are accepted.
func (s *membershipService) UploadProof(ctx context.Context, id, filename string, content []byte) (*membership.Membership, error) {
	if len(content) == 0 {
		return nil, ierr.NewError("proof file is empty").
			WithHint("Upload a non-empty payment proof").
			Mark(ierr.ErrValidation)
	}

	kind, _ := filetype.Match(content)
	if !filetype.IsImage(content) && kind.Extension != "pdf" {
		return nil, ierr.NewError("unsupported proof file type").
			WithHint("Payment proofs must be an image or a PDF").
			WithReportableDetails(map[string]interface{}{"detected": kind.Extension}).
			Mark(ierr.ErrValidation)
	}

	var updated *membership.Membership
	err := s.executor.Execute(ctx, Mutation{
		Name: "membership.upload_proof",
		Run: func(ctx context.Context) error {
			var err error
			updated, err = s.MembershipRepo.UploadProof(ctx, id, upstream.File{
				Field:    "proof",
				Filename: filename,
				Content:  content,
			})
			return err
		},
		Invalidates: membership.LifecycleInvalidations(),
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// BulkCancel fans out per id; the backend has no bulk membership endpoint.
func (s *membershipService) BulkCancel(ctx context.Context, selection *SelectionSet, ids []string, reason string) error {
	return s.bulk.Execute(ctx, selection, BulkRequest{
		Name:        "memberships.cancel",
		IDs:         ids,
		Reason:      reason,
		NeedsReason: true,
		Invalidates: membership.LifecycleInvalidations(),
		RunEach: func(ctx context.Context, id string) error {
			_, err := s.MembershipRepo.Cancel(ctx, id, reason)
			return err
		},
	})
}

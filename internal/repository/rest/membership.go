package rest

import (
	"context"
	"fmt"
	"time"

	domainMembership "github.com/vivahlink/console/internal/domain/membership"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

const pathMemberships = "/api/admin/memberships"

type membershipRepository struct {
	client upstream.Client
	log    *logger.Logger
}

func NewMembershipRepository(client upstream.Client, log *logger.Logger) domainMembership.Repository {
	return &membershipRepository{client: client, log: log}
}

func (r *membershipRepository) List(ctx context.Context, filter *types.MembershipFilter) (*domainMembership.ListResult, error) {
	if filter == nil {
		filter = types.NewMembershipFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var resp upstream.ListResponse[*domainMembership.Membership]
	if err := r.client.Get(ctx, pathMemberships, filter.ToQuery(), &resp); err != nil {
		return nil, err
	}
	for _, m := range resp.Items {
		if m != nil && m.ProofPath != "" {
			m.ProofURL = r.client.ImageURL(m.ProofPath)
		}
	}
	return &domainMembership.ListResult{Items: resp.Items, Pagination: resp.Pagination}, nil
}

func (r *membershipRepository) ListPending(ctx context.Context, filter *types.MembershipFilter) (*domainMembership.ListResult, error) {
	if filter == nil {
		filter = types.NewMembershipFilter()
	}
	pending := types.MembershipStatusPending
	filter.Status = &pending
	return r.List(ctx, filter)
}

func (r *membershipRepository) Get(ctx context.Context, id string) (*domainMembership.Membership, error) {
	if id == "" {
		return nil, ierr.NewError("membership ID is required").
			WithHint("Please provide a valid membership ID").
			Mark(ierr.ErrValidation)
	}

	var m domainMembership.Membership
	if err := r.client.Get(ctx, fmt.Sprintf("%s/%s", pathMemberships, id), nil, &m); err != nil {
		return nil, err
	}
	m.ProofURL = r.client.ImageURL(m.ProofPath)
	return &m, nil
}

func (r *membershipRepository) Stats(ctx context.Context) (*domainMembership.Stats, error) {
	var s domainMembership.Stats
	if err := r.client.Get(ctx, pathMemberships+"/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *membershipRepository) Approve(ctx context.Context, input domainMembership.ApprovalInput) (*domainMembership.Membership, error) {
	body := map[string]interface{}{}
	if input.CashReceipt != nil {
		body["cash_received_date"] = input.CashReceipt.ReceivedDate.Format(time.RFC3339)
		body["cash_received_by"] = input.CashReceipt.ReceivedBy
	}

	var m domainMembership.Membership
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/approve", pathMemberships, input.ID), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Reject(ctx context.Context, id, reason string) (*domainMembership.Membership, error) {
	body := map[string]string{"reason": reason}
	var m domainMembership.Membership
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/reject", pathMemberships, id), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Cancel(ctx context.Context, id, reason string) (*domainMembership.Membership, error) {
	body := map[string]string{"reason": reason}
	var m domainMembership.Membership
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/cancel", pathMemberships, id), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Reactivate(ctx context.Context, id string) (*domainMembership.Membership, error) {
	var m domainMembership.Membership
	if err := r.client.Patch(ctx, fmt.Sprintf("%s/%s/reactivate", pathMemberships, id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) UploadProof(ctx context.Context, id string, file upstream.File) (*domainMembership.Membership, error) {
	var m domainMembership.Membership
	path := fmt.Sprintf("%s/%s/proof", pathMemberships, id)
	if err := r.client.PostMultipart(ctx, path, nil, []upstream.File{file}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/vivahlink/console/internal/domain/membership"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

// InMemoryMembershipStore implements membership.Repository
type InMemoryMembershipStore struct {
	*InMemoryStore[*membership.Membership]
}

func NewInMemoryMembershipStore() *InMemoryMembershipStore {
	return &InMemoryMembershipStore{
		InMemoryStore: NewInMemoryStore[*membership.Membership](),
	}
}

func copyMembership(m *membership.Membership) *membership.Membership {
	if m == nil {
		return nil
	}
	copied := *m
	if m.CashReceipt != nil {
		receipt := *m.CashReceipt
		copied.CashReceipt = &receipt
	}
	return &copied
}

func (s *InMemoryMembershipStore) Seed(ctx context.Context, m *membership.Membership) error {
	return s.InMemoryStore.Create(ctx, m.ID, copyMembership(m))
}

func (s *InMemoryMembershipStore) List(ctx context.Context, filter *types.MembershipFilter) (*membership.ListResult, error) {
	if filter == nil {
		filter = types.NewMembershipFilter()
	}

	records, err := s.InMemoryStore.List(ctx, filter, membershipFilterFn, membershipSortFn)
	if err != nil {
		return nil, err
	}

	items, pagination := paginate(records, filter.QueryFilter)
	return &membership.ListResult{Items: items, Pagination: pagination}, nil
}

func (s *InMemoryMembershipStore) ListPending(ctx context.Context, filter *types.MembershipFilter) (*membership.ListResult, error) {
	if filter == nil {
		filter = types.NewMembershipFilter()
	}
	pending := types.MembershipStatusPending
	scoped := *filter
	scoped.Status = &pending
	return s.List(ctx, &scoped)
}

func (s *InMemoryMembershipStore) Get(ctx context.Context, id string) (*membership.Membership, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyMembership(m), nil
}

func (s *InMemoryMembershipStore) Stats(ctx context.Context) (*membership.Stats, error) {
	records, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	stats := &membership.Stats{}
	for _, m := range records {
		switch m.Status {
		case types.MembershipStatusPending:
			stats.Pending++
		case types.MembershipStatusApproved:
			stats.Approved++
			stats.Revenue = stats.Revenue.Add(m.Amount)
		case types.MembershipStatusRejected:
			stats.Rejected++
		case types.MembershipStatusCancelled:
			stats.Cancelled++
		case types.MembershipStatusExpired:
			stats.Expired++
		}
	}
	return stats, nil
}

func (s *InMemoryMembershipStore) Approve(ctx context.Context, input membership.ApprovalInput) (*membership.Membership, error) {
	return s.mutate(ctx, input.ID, func(m *membership.Membership) {
		now := time.Now()
		expires := now.AddDate(0, 1, 0)
		m.Status = types.MembershipStatusApproved
		m.CashReceipt = input.CashReceipt
		m.RejectionReason = ""
		m.StartsAt = &now
		m.ExpiresAt = &expires
	})
}

func (s *InMemoryMembershipStore) Reject(ctx context.Context, id, reason string) (*membership.Membership, error) {
	return s.mutate(ctx, id, func(m *membership.Membership) {
		m.Status = types.MembershipStatusRejected
		m.RejectionReason = reason
	})
}

func (s *InMemoryMembershipStore) Cancel(ctx context.Context, id, reason string) (*membership.Membership, error) {
	return s.mutate(ctx, id, func(m *membership.Membership) {
		m.Status = types.MembershipStatusCancelled
		m.RejectionReason = reason
	})
}

func (s *InMemoryMembershipStore) Reactivate(ctx context.Context, id string) (*membership.Membership, error) {
	return s.mutate(ctx, id, func(m *membership.Membership) {
		m.Status = types.MembershipStatusApproved
		m.RejectionReason = ""
	})
}

func (s *InMemoryMembershipStore) UploadProof(ctx context.Context, id string, file upstream.File) (*membership.Membership, error) {
	return s.mutate(ctx, id, func(m *membership.Membership) {
		m.ProofPath = fmt.Sprintf("proofs/%s/%s", id, file.Filename)
		m.ProofURL = "https://cdn.test/" + m.ProofPath
	})
}

func (s *InMemoryMembershipStore) mutate(ctx context.Context, id string, fn func(m *membership.Membership)) (*membership.Membership, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := copyMembership(m)
	fn(updated)
	updated.UpdatedAt = time.Now()

	if err := s.InMemoryStore.Update(ctx, id, updated); err != nil {
		return nil, err
	}
	return copyMembership(updated), nil
}

func membershipFilterFn(ctx context.Context, m *membership.Membership, filter interface{}) bool {
	if m == nil {
		return false
	}

	f, ok := filter.(*types.MembershipFilter)
	if !ok {
		return true
	}

	if f.Status != nil && m.Status != *f.Status {
		return false
	}
	if f.PlanID != nil && m.PlanID != *f.PlanID {
		return false
	}
	if f.PaymentMethod != nil && m.PaymentMethod != *f.PaymentMethod {
		return false
	}
	if f.UserID != nil && m.UserID != *f.UserID {
		return false
	}
	return true
}

func membershipSortFn(i, j *membership.Membership) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

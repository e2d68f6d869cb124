package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/vivahlink/console/internal/domain/profile"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// InMemoryProfileStore implements profile.Repository
type InMemoryProfileStore struct {
	*InMemoryStore[*profile.Profile]
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		InMemoryStore: NewInMemoryStore[*profile.Profile](),
	}
}

// Helper to copy profile
func copyProfile(p *profile.Profile) *profile.Profile {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

// Seed inserts a profile directly, for test fixtures.
func (s *InMemoryProfileStore) Seed(ctx context.Context, p *profile.Profile) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProfile(p))
}

func (s *InMemoryProfileStore) List(ctx context.Context, filter *types.ProfileFilter) (*profile.ListResult, error) {
	if filter == nil {
		filter = types.NewProfileFilter()
	}

	profiles, err := s.InMemoryStore.List(ctx, filter, profileFilterFn, profileSortFn)
	if err != nil {
		return nil, err
	}

	items, pagination := paginate(profiles, filter.QueryFilter)
	return &profile.ListResult{Items: items, Pagination: pagination}, nil
}

func (s *InMemoryProfileStore) ListDeleted(ctx context.Context, filter *types.DeletedProfileFilter) (*profile.ListResult, error) {
	if filter == nil {
		filter = types.NewDeletedProfileFilter()
	}

	profiles, err := s.InMemoryStore.List(ctx, filter, deletedProfileFilterFn, profileSortFn)
	if err != nil {
		return nil, err
	}

	items, pagination := paginate(profiles, filter.QueryFilter)
	return &profile.ListResult{Items: items, Pagination: pagination}, nil
}

func (s *InMemoryProfileStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyProfile(p), nil
}

func (s *InMemoryProfileStore) Approve(ctx context.Context, id string) (*profile.Profile, error) {
	return s.mutate(ctx, id, func(p *profile.Profile) {
		now := time.Now()
		p.VerificationStatus = types.VerificationStatusApproved
		p.RejectionReason = ""
		p.VerifiedAt = &now
	})
}

func (s *InMemoryProfileStore) Reject(ctx context.Context, id, reason string) (*profile.Profile, error) {
	return s.mutate(ctx, id, func(p *profile.Profile) {
		p.VerificationStatus = types.VerificationStatusRejected
		p.RejectionReason = reason
		p.VerifiedAt = nil
	})
}

func (s *InMemoryProfileStore) Reapply(ctx context.Context, id string) (*profile.Profile, error) {
	return s.mutate(ctx, id, func(p *profile.Profile) {
		p.VerificationStatus = types.VerificationStatusPending
		p.RejectionReason = ""
	})
}

func (s *InMemoryProfileStore) Activate(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, id, func(p *profile.Profile) { p.IsActive = true })
	return err
}

func (s *InMemoryProfileStore) Deactivate(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, id, func(p *profile.Profile) { p.IsActive = false })
	return err
}

func (s *InMemoryProfileStore) Block(ctx context.Context, id, reason string) error {
	_, err := s.mutate(ctx, id, func(p *profile.Profile) {
		p.Blocked = true
		p.BlockReason = reason
	})
	return err
}

func (s *InMemoryProfileStore) Unblock(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, id, func(p *profile.Profile) {
		p.Blocked = false
		p.BlockReason = ""
	})
	return err
}

func (s *InMemoryProfileStore) Delete(ctx context.Context, id string) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.IsDeleted() {
		return ierr.NewError("profile already deleted").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrInvalidOperation)
	}

	_, err = s.mutate(ctx, id, func(p *profile.Profile) {
		now := time.Now()
		p.DeletedAt = &now
		p.DeletedBy = types.GetActorID(ctx)
	})
	return err
}

func (s *InMemoryProfileStore) Restore(ctx context.Context, id string) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsDeleted() {
		return ierr.NewError("profile is not deleted").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrInvalidOperation)
	}

	_, err = s.mutate(ctx, id, func(p *profile.Profile) {
		p.DeletedAt = nil
		p.DeletedBy = ""
	})
	return err
}

func (s *InMemoryProfileStore) BulkDelete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryProfileStore) BulkRestore(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.Restore(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryProfileStore) mutate(ctx context.Context, id string, fn func(p *profile.Profile)) (*profile.Profile, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := copyProfile(p)
	fn(updated)
	updated.UpdatedAt = time.Now()

	if err := s.InMemoryStore.Update(ctx, id, updated); err != nil {
		return nil, err
	}
	return copyProfile(updated), nil
}

// profileFilterFn implements filtering logic for the live profile list
func profileFilterFn(ctx context.Context, p *profile.Profile, filter interface{}) bool {
	if p == nil || p.IsDeleted() {
		return false
	}

	f, ok := filter.(*types.ProfileFilter)
	if !ok {
		return true
	}

	if f.VerificationStatus != nil && p.VerificationStatus != *f.VerificationStatus {
		return false
	}
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	if f.Blocked != nil && p.Blocked != *f.Blocked {
		return false
	}
	if f.Gender != nil && p.Gender != *f.Gender {
		return false
	}
	if f.Religion != nil && p.Religion != *f.Religion {
		return false
	}
	if f.City != nil && p.City != *f.City {
		return false
	}
	if search := f.GetSearch(); search != "" {
		if !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			return false
		}
	}
	return true
}

func deletedProfileFilterFn(ctx context.Context, p *profile.Profile, filter interface{}) bool {
	if p == nil || !p.IsDeleted() {
		return false
	}

	f, ok := filter.(*types.DeletedProfileFilter)
	if !ok {
		return true
	}

	if f.DeletedBy != nil && p.DeletedBy != *f.DeletedBy {
		return false
	}
	if search := f.GetSearch(); search != "" {
		if !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			return false
		}
	}
	return true
}

// profileSortFn sorts by created_at desc
func profileSortFn(i, j *profile.Profile) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

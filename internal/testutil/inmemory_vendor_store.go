package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/vivahlink/console/internal/domain/vendor"
	"github.com/vivahlink/console/internal/types"
)

// InMemoryVendorStore implements vendor.Repository
type InMemoryVendorStore struct {
	*InMemoryStore[*vendor.Vendor]
}

func NewInMemoryVendorStore() *InMemoryVendorStore {
	return &InMemoryVendorStore{
		InMemoryStore: NewInMemoryStore[*vendor.Vendor](),
	}
}

func copyVendor(v *vendor.Vendor) *vendor.Vendor {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func (s *InMemoryVendorStore) Seed(ctx context.Context, v *vendor.Vendor) error {
	return s.InMemoryStore.Create(ctx, v.ID, copyVendor(v))
}

func (s *InMemoryVendorStore) List(ctx context.Context, filter *types.VendorFilter) (*vendor.ListResult, error) {
	if filter == nil {
		filter = types.NewVendorFilter()
	}

	vendors, err := s.InMemoryStore.List(ctx, filter, vendorFilterFn, vendorSortFn)
	if err != nil {
		return nil, err
	}

	items, pagination := paginate(vendors, filter.QueryFilter)
	return &vendor.ListResult{Items: items, Pagination: pagination}, nil
}

func (s *InMemoryVendorStore) Get(ctx context.Context, id string) (*vendor.Vendor, error) {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyVendor(v), nil
}

func (s *InMemoryVendorStore) Approve(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(v *vendor.Vendor) {
		v.Approved = true
		v.RejectionReason = ""
	})
}

func (s *InMemoryVendorStore) Reject(ctx context.Context, id, reason string) error {
	return s.mutate(ctx, id, func(v *vendor.Vendor) {
		v.Approved = false
		v.RejectionReason = reason
	})
}

func (s *InMemoryVendorStore) Activate(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(v *vendor.Vendor) { v.IsActive = true })
}

func (s *InMemoryVendorStore) Deactivate(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(v *vendor.Vendor) { v.IsActive = false })
}

func (s *InMemoryVendorStore) mutate(ctx context.Context, id string, fn func(v *vendor.Vendor)) error {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := copyVendor(v)
	fn(updated)
	updated.UpdatedAt = time.Now()

	return s.InMemoryStore.Update(ctx, id, updated)
}

func vendorFilterFn(ctx context.Context, v *vendor.Vendor, filter interface{}) bool {
	if v == nil {
		return false
	}

	f, ok := filter.(*types.VendorFilter)
	if !ok {
		return true
	}

	if f.Approved != nil && v.Approved != *f.Approved {
		return false
	}
	if f.IsActive != nil && v.IsActive != *f.IsActive {
		return false
	}
	if f.Category != nil && v.Category != *f.Category {
		return false
	}
	if search := f.GetSearch(); search != "" {
		if !strings.Contains(strings.ToLower(v.BusinessName), strings.ToLower(search)) {
			return false
		}
	}
	return true
}

func vendorSortFn(i, j *vendor.Vendor) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

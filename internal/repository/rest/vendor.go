package rest

import (
	"context"
	"fmt"

	domainVendor "github.com/vivahlink/console/internal/domain/vendor"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

const pathVendors = "/api/admin/vendors"

type vendorRepository struct {
	client upstream.Client
	log    *logger.Logger
}

func NewVendorRepository(client upstream.Client, log *logger.Logger) domainVendor.Repository {
	return &vendorRepository{client: client, log: log}
}

func (r *vendorRepository) List(ctx context.Context, filter *types.VendorFilter) (*domainVendor.ListResult, error) {
	if filter == nil {
		filter = types.NewVendorFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var resp upstream.ListResponse[*domainVendor.Vendor]
	if err := r.client.Get(ctx, pathVendors, filter.ToQuery(), &resp); err != nil {
		return nil, err
	}
	for _, v := range resp.Items {
		if v != nil && v.LogoPath != "" {
			v.LogoURL = r.client.ImageURL(v.LogoPath)
		}
	}
	return &domainVendor.ListResult{Items: resp.Items, Pagination: resp.Pagination}, nil
}

func (r *vendorRepository) Get(ctx context.Context, id string) (*domainVendor.Vendor, error) {
	if id == "" {
		return nil, ierr.NewError("vendor ID is required").
			WithHint("Please provide a valid vendor ID").
			Mark(ierr.ErrValidation)
	}

	var v domainVendor.Vendor
	if err := r.client.Get(ctx, fmt.Sprintf("%s/%s", pathVendors, id), nil, &v); err != nil {
		return nil, err
	}
	v.LogoURL = r.client.ImageURL(v.LogoPath)
	return &v, nil
}

func (r *vendorRepository) Approve(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/approve", pathVendors, id), nil, nil)
}

func (r *vendorRepository) Reject(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/reject", pathVendors, id), body, nil)
}

func (r *vendorRepository) Activate(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/activate", pathVendors, id), nil, nil)
}

func (r *vendorRepository) Deactivate(ctx context.Context, id string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/deactivate", pathVendors, id), nil, nil)
}

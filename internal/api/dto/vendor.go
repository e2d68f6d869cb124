package dto

import (
	"strings"

	"github.com/vivahlink/console/internal/domain/vendor"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// RejectVendorRequest carries the mandatory rejection reason.
type RejectVendorRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (r *RejectVendorRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return ierr.NewError("reason is required").
			WithHint("Provide a reason for rejecting this vendor").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// VendorResponse wraps a single vendor record.
type VendorResponse struct {
	Vendor *vendor.Vendor `json:"vendor"`
}

// ListVendorsResponse is one page of vendor records.
type ListVendorsResponse struct {
	Items      []*vendor.Vendor         `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

func NewListVendorsResponse(result *vendor.ListResult) *ListVendorsResponse {
	return &ListVendorsResponse{Items: result.Items, Pagination: result.Pagination}
}

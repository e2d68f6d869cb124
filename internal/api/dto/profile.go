package dto

import (
	"strings"

	"github.com/vivahlink/console/internal/domain/profile"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/validator"
)

// RejectProfileRequest carries the mandatory rejection reason.
type RejectProfileRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (r *RejectProfileRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return ierr.NewError("rejection reason is required").
			WithHint("Provide a reason when rejecting").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BlockProfileRequest mirrors reject: blocking needs a reason too.
type BlockProfileRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (r *BlockProfileRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return ierr.NewError("block reason is required").
			WithHint("Provide a reason when blocking").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BulkActionRequest is one multi-select operation over a list view.
type BulkActionRequest struct {
	Action types.BulkAction `json:"action" validate:"required"`
	IDs    []string         `json:"ids" validate:"required,min=1,dive,required"`
	Reason string           `json:"reason,omitempty"`
}

func (r *BulkActionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Action.Validate(); err != nil {
		return err
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Action.RequiresReason() && r.Reason == "" {
		return ierr.NewErrorf("%s requires a reason", r.Action).
			WithHint("Provide a reason for this action").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ProfileResponse wraps a single profile.
type ProfileResponse struct {
	Profile *profile.Profile `json:"profile"`
}

// ListProfilesResponse is one page of profiles.
type ListProfilesResponse struct {
	Items      []*profile.Profile       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

func NewListProfilesResponse(result *profile.ListResult) *ListProfilesResponse {
	return &ListProfilesResponse{Items: result.Items, Pagination: result.Pagination}
}

package dto

import (
	"strings"
	"time"

	"github.com/vivahlink/console/internal/domain/membership"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/validator"
)

// ApproveMembershipRequest approves a pending membership. Cash and mixed
// payments must carry the receipt fields; they are captured here, at
// approval time, never earlier.
type ApproveMembershipRequest struct {
	PaymentMethod    types.PaymentMethod `json:"payment_method" validate:"required,oneof=online cash mixed"`
	CashReceivedDate *time.Time          `json:"cash_received_date,omitempty"`
	CashReceivedBy   string              `json:"cash_received_by,omitempty"`
}

func (r *ApproveMembershipRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PaymentMethod.RequiresCashReceipt() {
		if r.CashReceivedDate == nil || strings.TrimSpace(r.CashReceivedBy) == "" {
			return ierr.NewError("cash receipt details are required").
				WithHint("Cash and mixed payments need the received date and receiver").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// CashReceipt builds the receipt for cash/mixed approvals, nil otherwise.
func (r *ApproveMembershipRequest) CashReceipt() *types.CashReceipt {
	if !r.PaymentMethod.RequiresCashReceipt() {
		return nil
	}
	return &types.CashReceipt{
		ReceivedDate: *r.CashReceivedDate,
		ReceivedBy:   strings.TrimSpace(r.CashReceivedBy),
	}
}

// RejectMembershipRequest rejects or cancels with a mandatory reason.
type RejectMembershipRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (r *RejectMembershipRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return ierr.NewError("a reason is required").
			WithHint("Provide a reason to continue").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MembershipResponse wraps a single membership record.
type MembershipResponse struct {
	Membership *membership.Membership `json:"membership"`
}

// ListMembershipsResponse is one page of membership records.
type ListMembershipsResponse struct {
	Items      []*membership.Membership `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

func NewListMembershipsResponse(result *membership.ListResult) *ListMembershipsResponse {
	return &ListMembershipsResponse{Items: result.Items, Pagination: result.Pagination}
}

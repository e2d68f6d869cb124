package types

import (
	"strings"
	"time"

	ierr "github.com/vivahlink/console/internal/errors"
)

// MembershipStatus is the lifecycle state of a membership (paid
// subscription) record.
type MembershipStatus string

const (
	MembershipStatusPending   MembershipStatus = "pending"
	MembershipStatusApproved  MembershipStatus = "approved"
	MembershipStatusRejected  MembershipStatus = "rejected"
	MembershipStatusCancelled MembershipStatus = "cancelled"
	MembershipStatusExpired   MembershipStatus = "expired"
)

// PaymentMethod is how a membership was paid for. Cash and mixed payments
// require receipt metadata captured at approval time.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodMixed  PaymentMethod = "mixed"
)

func (m PaymentMethod) RequiresCashReceipt() bool {
	return m == PaymentMethodCash || m == PaymentMethodMixed
}

// MembershipAction is a lifecycle transition request.
type MembershipAction string

const (
	MembershipActionApprove    MembershipAction = "approve"
	MembershipActionReject     MembershipAction = "reject"
	MembershipActionCancel     MembershipAction = "cancel"
	MembershipActionReactivate MembershipAction = "reactivate"
)

// CashReceipt records who took a cash payment and when. Captured at
// approval, never earlier.
type CashReceipt struct {
	ReceivedDate time.Time `json:"received_date"`
	ReceivedBy   string    `json:"received_by"`
}

func (r *CashReceipt) Validate() error {
	if r == nil || r.ReceivedDate.IsZero() || strings.TrimSpace(r.ReceivedBy) == "" {
		return ierr.NewError("cash receipt details are required").
			WithHint("Provide the cash received date and receiver for cash or mixed payments").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransition applies the membership lifecycle:
//
//	pending              -> approved | rejected
//	approved             -> cancelled | expired
//	cancelled | expired  -> approved (reactivate)
func (s MembershipStatus) CanTransition(action MembershipAction) (MembershipStatus, error) {
	switch action {
	case MembershipActionApprove:
		if s == MembershipStatusPending {
			return MembershipStatusApproved, nil
		}
	case MembershipActionReject:
		if s == MembershipStatusPending {
			return MembershipStatusRejected, nil
		}
	case MembershipActionCancel:
		if s == MembershipStatusApproved {
			return MembershipStatusCancelled, nil
		}
	case MembershipActionReactivate:
		if s == MembershipStatusCancelled || s == MembershipStatusExpired {
			return MembershipStatusApproved, nil
		}
	default:
		return "", ierr.NewErrorf("unknown membership action: %s", action).
			Mark(ierr.ErrValidation)
	}

	return "", ierr.NewErrorf("cannot %s a %s membership", action, s).
		WithHint("This action is not allowed in the membership's current state").
		WithReportableDetails(map[string]interface{}{
			"status": s,
			"action": action,
		}).
		Mark(ierr.ErrInvalidOperation)
}

package types

import (
	"strings"

	ierr "github.com/vivahlink/console/internal/errors"
)

// VerificationStatus is the moderation state of a profile.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Validate() error {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return nil
	}
	return ierr.NewErrorf("invalid verification status: %s", s).
		WithHint("Verification status must be pending, approved or rejected").
		Mark(ierr.ErrValidation)
}

// VerificationAction is a transition request against the verification
// state machine.
type VerificationAction string

const (
	VerificationActionApprove VerificationAction = "approve"
	VerificationActionReject  VerificationAction = "reject"
	// VerificationActionReapply is owner-initiated: a rejected profile goes
	// back to pending for another review round.
	VerificationActionReapply VerificationAction = "reapply"
)

// VerificationTransition is the outcome of a guarded transition. Reason is
// the rejection reason to persist; it is cleared (empty) on every transition
// away from rejected so status and reason always change together.
type VerificationTransition struct {
	From   VerificationStatus
	To     VerificationStatus
	Reason string
}

// Transition applies the verification state machine.
//
//	pending  --approve--> approved   (reason cleared, verifiedAt set by caller)
//	pending  --reject---> rejected   (requires non-blank reason)
//	rejected --reapply--> pending    (reason cleared)
//
// Approved profiles have no owner-initiated transition.
func (s VerificationStatus) Transition(action VerificationAction, reason string) (VerificationTransition, error) {
	t := VerificationTransition{From: s}

	switch action {
	case VerificationActionApprove:
		if s != VerificationStatusPending {
			return t, invalidTransition(s, action)
		}
		t.To = VerificationStatusApproved
		return t, nil

	case VerificationActionReject:
		if s != VerificationStatusPending {
			return t, invalidTransition(s, action)
		}
		if strings.TrimSpace(reason) == "" {
			return t, ierr.NewError("rejection reason is required").
				WithHint("Provide a reason when rejecting a profile").
				Mark(ierr.ErrValidation)
		}
		t.To = VerificationStatusRejected
		t.Reason = strings.TrimSpace(reason)
		return t, nil

	case VerificationActionReapply:
		if s != VerificationStatusRejected {
			return t, invalidTransition(s, action)
		}
		t.To = VerificationStatusPending
		return t, nil
	}

	return t, ierr.NewErrorf("unknown verification action: %s", action).
		Mark(ierr.ErrValidation)
}

func invalidTransition(from VerificationStatus, action VerificationAction) error {
	return ierr.NewErrorf("cannot %s a %s profile", action, from).
		WithHint("This action is not allowed in the profile's current state").
		WithReportableDetails(map[string]interface{}{
			"status": from,
			"action": action,
		}).
		Mark(ierr.ErrInvalidOperation)
}

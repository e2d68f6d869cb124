package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/vivahlink/console/internal/errors"
)

func TestVerificationApproveOnlyFromPending(t *testing.T) {
	tr, err := VerificationStatusPending.Transition(VerificationActionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, VerificationStatusApproved, tr.To)
	assert.Empty(t, tr.Reason)

	_, err = VerificationStatusApproved.Transition(VerificationActionApprove, "")
	assert.True(t, ierr.IsInvalidOperation(err))

	_, err = VerificationStatusRejected.Transition(VerificationActionApprove, "")
	assert.True(t, ierr.IsInvalidOperation(err), "a rejected profile must re-apply before it can be approved")
}

func TestVerificationRejectRequiresReason(t *testing.T) {
	_, err := VerificationStatusPending.Transition(VerificationActionReject, "")
	assert.True(t, ierr.IsValidation(err))

	_, err = VerificationStatusPending.Transition(VerificationActionReject, "   ")
	assert.True(t, ierr.IsValidation(err), "a blank reason is no reason")

	tr, err := VerificationStatusPending.Transition(VerificationActionReject, "  photo mismatch ")
	require.NoError(t, err)
	assert.Equal(t, VerificationStatusRejected, tr.To)
	assert.Equal(t, "photo mismatch", tr.Reason)
}

func TestVerificationRejectOnlyFromPending(t *testing.T) {
	_, err := VerificationStatusApproved.Transition(VerificationActionReject, "spam")
	assert.True(t, ierr.IsInvalidOperation(err))

	_, err = VerificationStatusRejected.Transition(VerificationActionReject, "spam")
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestVerificationReapplyOnlyFromRejected(t *testing.T) {
	tr, err := VerificationStatusRejected.Transition(VerificationActionReapply, "")
	require.NoError(t, err)
	assert.Equal(t, VerificationStatusPending, tr.To)
	assert.Empty(t, tr.Reason, "re-apply clears the rejection reason with the status change")

	_, err = VerificationStatusPending.Transition(VerificationActionReapply, "")
	assert.True(t, ierr.IsInvalidOperation(err))

	_, err = VerificationStatusApproved.Transition(VerificationActionReapply, "")
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestVerificationStatusValidate(t *testing.T) {
	assert.NoError(t, VerificationStatusPending.Validate())
	assert.NoError(t, VerificationStatusApproved.Validate())
	assert.NoError(t, VerificationStatusRejected.Validate())
	assert.Error(t, VerificationStatus("verified").Validate())
}

package types

import (
	ierr "github.com/vivahlink/console/internal/errors"
)

// BulkAction is a moderation action applied over a selection of ids.
type BulkAction string

const (
	BulkActionActivate   BulkAction = "activate"
	BulkActionDeactivate BulkAction = "deactivate"
	BulkActionApprove    BulkAction = "approve"
	BulkActionReject     BulkAction = "reject"
	BulkActionBlock      BulkAction = "block"
	BulkActionUnblock    BulkAction = "unblock"
	BulkActionDelete     BulkAction = "delete"
	BulkActionRestore    BulkAction = "restore"
	BulkActionCancel     BulkAction = "cancel"
)

// RequiresReason reports whether the action must carry a non-blank reason
// before anything is sent upstream.
func (a BulkAction) RequiresReason() bool {
	switch a {
	case BulkActionReject, BulkActionBlock, BulkActionCancel:
		return true
	}
	return false
}

func (a BulkAction) Validate() error {
	switch a {
	case BulkActionActivate, BulkActionDeactivate, BulkActionApprove,
		BulkActionReject, BulkActionBlock, BulkActionUnblock,
		BulkActionDelete, BulkActionRestore, BulkActionCancel:
		return nil
	}
	return ierr.NewErrorf("invalid bulk action: %s", a).
		WithHint("Unknown bulk action").
		Mark(ierr.ErrValidation)
}

package profile

import (
	"time"

	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// Profile is a matchmaking profile as the console sees it. Verification
// status, visibility (IsActive) and soft-delete membership are three
// independent axes: an approved profile may be hidden, a pending one may be
// visible, and deletion is reversible without touching either.
type Profile struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	FullName    string `json:"full_name"`
	Gender      string `json:"gender,omitempty"`
	Religion    string `json:"religion,omitempty"`
	City        string `json:"city,omitempty"`
	PhotoPath   string `json:"photo_path,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	VerificationStatus types.VerificationStatus `json:"verification_status"`
	// RejectionReason is present iff VerificationStatus is rejected.
	RejectionReason string     `json:"rejection_reason,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`

	IsActive bool `json:"is_active"`
	Blocked  bool `json:"blocked"`
	// BlockReason mirrors RejectionReason for the block flag.
	BlockReason string `json:"block_reason,omitempty"`

	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the status/reason invariant the backend is supposed to
// uphold; the console refuses to render records that violate it silently.
func (p *Profile) Validate() error {
	if err := p.VerificationStatus.Validate(); err != nil {
		return err
	}
	rejected := p.VerificationStatus == types.VerificationStatusRejected
	if rejected && p.RejectionReason == "" {
		return ierr.NewError("rejected profile is missing its rejection reason").
			WithReportableDetails(map[string]interface{}{"profile_id": p.ID}).
			Mark(ierr.ErrValidation)
	}
	if !rejected && p.RejectionReason != "" {
		return ierr.NewError("non-rejected profile carries a stale rejection reason").
			WithReportableDetails(map[string]interface{}{"profile_id": p.ID}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsDeleted reports soft-delete membership.
func (p *Profile) IsDeleted() bool {
	return p.DeletedAt != nil
}

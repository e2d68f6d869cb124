package types

import (
	"maps"

	ierr "github.com/vivahlink/console/internal/errors"
)

// ProfileFilter narrows the profile list by moderation and visibility state.
type ProfileFilter struct {
	*QueryFilter

	VerificationStatus *VerificationStatus `json:"verification_status,omitempty" form:"verification_status"`
	IsActive           *bool               `json:"is_active,omitempty" form:"is_active"`
	Blocked            *bool               `json:"blocked,omitempty" form:"blocked"`
	Gender             *string             `json:"gender,omitempty" form:"gender"`
	Religion           *string             `json:"religion,omitempty" form:"religion"`
	City               *string             `json:"city,omitempty" form:"city"`
}

func NewProfileFilter() *ProfileFilter {
	return &ProfileFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *ProfileFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.VerificationStatus != nil {
		if err := f.VerificationStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *ProfileFilter) ScopeParams() map[string]string {
	if f == nil {
		f = NewProfileFilter()
	}
	params := f.QueryFilter.ScopeParams()
	if f.VerificationStatus != nil {
		params["verification_status"] = string(*f.VerificationStatus)
	}
	putBool(params, "is_active", f.IsActive)
	putBool(params, "blocked", f.Blocked)
	putString(params, "gender", f.Gender)
	putString(params, "religion", f.Religion)
	putString(params, "city", f.City)
	return params
}

func (f *ProfileFilter) ToQuery() map[string]string {
	return f.ScopeParams()
}

// DeletedProfileFilter lists the soft-deleted set.
type DeletedProfileFilter struct {
	*QueryFilter

	DeletedBy *string `json:"deleted_by,omitempty" form:"deleted_by"`
}

func NewDeletedProfileFilter() *DeletedProfileFilter {
	return &DeletedProfileFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *DeletedProfileFilter) Validate() error {
	if f == nil {
		return nil
	}
	return f.QueryFilter.Validate()
}

func (f *DeletedProfileFilter) ScopeParams() map[string]string {
	if f == nil {
		f = NewDeletedProfileFilter()
	}
	params := f.QueryFilter.ScopeParams()
	putString(params, "deleted_by", f.DeletedBy)
	return params
}

func (f *DeletedProfileFilter) ToQuery() map[string]string {
	return f.ScopeParams()
}

// VendorFilter narrows the vendor list.
type VendorFilter struct {
	*QueryFilter

	Approved *bool   `json:"approved,omitempty" form:"approved"`
	IsActive *bool   `json:"is_active,omitempty" form:"is_active"`
	Category *string `json:"category,omitempty" form:"category"`
}

func NewVendorFilter() *VendorFilter {
	return &VendorFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *VendorFilter) Validate() error {
	if f == nil {
		return nil
	}
	return f.QueryFilter.Validate()
}

func (f *VendorFilter) ScopeParams() map[string]string {
	if f == nil {
		f = NewVendorFilter()
	}
	params := f.QueryFilter.ScopeParams()
	putBool(params, "approved", f.Approved)
	putBool(params, "is_active", f.IsActive)
	putString(params, "category", f.Category)
	return params
}

func (f *VendorFilter) ToQuery() map[string]string {
	return f.ScopeParams()
}

// MembershipFilter narrows membership records by lifecycle state and plan.
type MembershipFilter struct {
	*QueryFilter

	Status        *MembershipStatus `json:"status,omitempty" form:"status"`
	PlanID        *string           `json:"plan_id,omitempty" form:"plan_id"`
	PaymentMethod *PaymentMethod    `json:"payment_method,omitempty" form:"payment_method"`
	UserID        *string           `json:"user_id,omitempty" form:"user_id"`
}

func NewMembershipFilter() *MembershipFilter {
	return &MembershipFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *MembershipFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.Status != nil {
		switch *f.Status {
		case MembershipStatusPending, MembershipStatusApproved, MembershipStatusRejected,
			MembershipStatusCancelled, MembershipStatusExpired:
		default:
			return ierr.NewErrorf("invalid membership status: %s", *f.Status).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (f *MembershipFilter) ScopeParams() map[string]string {
	if f == nil {
		f = NewMembershipFilter()
	}
	params := f.QueryFilter.ScopeParams()
	if f.Status != nil {
		params["status"] = string(*f.Status)
	}
	if f.PaymentMethod != nil {
		params["payment_method"] = string(*f.PaymentMethod)
	}
	putString(params, "plan_id", f.PlanID)
	putString(params, "user_id", f.UserID)
	return params
}

func (f *MembershipFilter) ToQuery() map[string]string {
	return f.ScopeParams()
}

// ChatFilter narrows support chats; MessagesAfter pages an open chat's
// message history during polling.
type ChatFilter struct {
	*QueryFilter

	Open          *bool   `json:"open,omitempty" form:"open"`
	UserID        *string `json:"user_id,omitempty" form:"user_id"`
	MessagesAfter *string `json:"messages_after,omitempty" form:"messages_after"`
}

func NewChatFilter() *ChatFilter {
	return &ChatFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *ChatFilter) Validate() error {
	if f == nil {
		return nil
	}
	return f.QueryFilter.Validate()
}

func (f *ChatFilter) ScopeParams() map[string]string {
	if f == nil {
		f = NewChatFilter()
	}
	params := f.QueryFilter.ScopeParams()
	putBool(params, "open", f.Open)
	putString(params, "user_id", f.UserID)
	putString(params, "messages_after", f.MessagesAfter)
	return params
}

func (f *ChatFilter) ToQuery() map[string]string {
	return f.ScopeParams()
}

// CloneParams copies scope params so callers can extend them without
// mutating a shared map.
func CloneParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	maps.Copy(out, params)
	return out
}

func putBool(params map[string]string, key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		params[key] = "true"
	} else {
		params[key] = "false"
	}
}

func putString(params map[string]string, key string, v *string) {
	if v == nil || *v == "" {
		return
	}
	params[key] = *v
}

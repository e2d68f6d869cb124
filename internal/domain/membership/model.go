package membership

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vivahlink/console/internal/types"
)

// Membership is a paid subscription record on a user's account.
type Membership struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	UserName string          `json:"user_name,omitempty"`
	PlanID   string          `json:"plan_id"`
	PlanName string          `json:"plan_name,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`

	Status        types.MembershipStatus `json:"status"`
	PaymentMethod types.PaymentMethod    `json:"payment_method"`
	// CashReceipt is recorded at approval time for cash/mixed payments.
	CashReceipt     *types.CashReceipt `json:"cash_receipt,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`

	// ProofPath points at the uploaded payment proof, relative to the
	// platform's uploads root.
	ProofPath string `json:"proof_path,omitempty"`
	ProofURL  string `json:"proof_url,omitempty"`

	StartsAt  *time.Time `json:"starts_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListResult is one page of membership records.
type ListResult struct {
	Items      []*Membership            `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// Stats is the membership dashboard aggregate.
type Stats struct {
	Pending   int             `json:"pending"`
	Approved  int             `json:"approved"`
	Rejected  int             `json:"rejected"`
	Cancelled int             `json:"cancelled"`
	Expired   int             `json:"expired"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ApprovalInput carries everything captured at approval time.
type ApprovalInput struct {
	ID          string
	CashReceipt *types.CashReceipt
}

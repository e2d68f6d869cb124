package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/vivahlink/console/internal/domain/membership"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/testutil"
	"github.com/vivahlink/console/internal/types"
)

type MembershipServiceSuite struct {
	testutil.BaseServiceTestSuite
	service MembershipService
}

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceSuite))
}

func (s *MembershipServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		Cache:          s.GetCacheStore(),
		ProfileRepo:    s.GetStores().Profile,
		VendorRepo:     s.GetStores().Vendor,
		MembershipRepo: s.GetStores().Membership,
		ChatRepo:       s.GetStores().Chat,
		StatsRepo:      s.GetStores().Stats,
	}
	executor := NewMutationExecutor(s.GetCacheStore(), s.GetLogger())
	bulk := NewBulkCoordinator(executor, s.GetCacheStore(), s.GetLogger())
	s.service = NewMembershipService(params, executor, bulk)
}

func (s *MembershipServiceSuite) seedMembership(id string, status types.MembershipStatus, method types.PaymentMethod) {
	m := &membership.Membership{
		ID:            id,
		UserID:        "user-" + id,
		PlanID:        "plan-gold",
		Amount:        decimal.NewFromInt(4999),
		Status:        status,
		PaymentMethod: method,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.NoError(s.GetStores().Membership.Seed(s.GetContext(), m))
}

func (s *MembershipServiceSuite) receipt() *types.CashReceipt {
	return &types.CashReceipt{ReceivedDate: time.Now(), ReceivedBy: "admin-1"}
}

func (s *MembershipServiceSuite) TestApproveOnlinePayment() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)

	updated, err := s.service.Approve(s.GetContext(), "m1", types.PaymentMethodOnline, nil)
	s.NoError(err)
	s.Equal(types.MembershipStatusApproved, updated.Status)
	s.NotNil(updated.StartsAt)
	s.NotNil(updated.ExpiresAt)
	s.Nil(updated.CashReceipt)
}

func (s *MembershipServiceSuite) TestApproveCashRequiresReceipt() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodCash)

	_, err := s.service.Approve(s.GetContext(), "m1", types.PaymentMethodCash, nil)
	s.True(ierr.IsValidation(err))

	_, err = s.service.Approve(s.GetContext(), "m1", types.PaymentMethodCash, &types.CashReceipt{ReceivedBy: "admin-1"})
	s.True(ierr.IsValidation(err), "a receipt without a received date is incomplete")

	current, err := s.GetStores().Membership.Get(s.GetContext(), "m1")
	s.NoError(err)
	s.Equal(types.MembershipStatusPending, current.Status, "nothing reaches the backend without the receipt")
}

func (s *MembershipServiceSuite) TestApproveMixedPaymentRecordsReceipt() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodMixed)

	updated, err := s.service.Approve(s.GetContext(), "m1", types.PaymentMethodMixed, s.receipt())
	s.NoError(err)
	s.Equal(types.MembershipStatusApproved, updated.Status)
	s.NotNil(updated.CashReceipt)
	s.Equal("admin-1", updated.CashReceipt.ReceivedBy)
}

func (s *MembershipServiceSuite) TestApproveOnlineDropsStrayReceipt() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)

	updated, err := s.service.Approve(s.GetContext(), "m1", types.PaymentMethodOnline, s.receipt())
	s.NoError(err)
	s.Nil(updated.CashReceipt, "online payments never carry a cash receipt")
}

func (s *MembershipServiceSuite) TestApproveOnlyFromPending() {
	s.seedMembership("m1", types.MembershipStatusApproved, types.PaymentMethodOnline)

	_, err := s.service.Approve(s.GetContext(), "m1", types.PaymentMethodOnline, nil)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestRejectRequiresReason() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)

	_, err := s.service.Reject(s.GetContext(), "m1", "")
	s.True(ierr.IsValidation(err))

	updated, err := s.service.Reject(s.GetContext(), "m1", "proof unreadable")
	s.NoError(err)
	s.Equal(types.MembershipStatusRejected, updated.Status)
	s.Equal("proof unreadable", updated.RejectionReason)
}

func (s *MembershipServiceSuite) TestCancelThenReactivate() {
	s.seedMembership("m1", types.MembershipStatusApproved, types.PaymentMethodOnline)

	updated, err := s.service.Cancel(s.GetContext(), "m1", "user request")
	s.NoError(err)
	s.Equal(types.MembershipStatusCancelled, updated.Status)

	updated, err = s.service.Reactivate(s.GetContext(), "m1")
	s.NoError(err)
	s.Equal(types.MembershipStatusApproved, updated.Status)
	s.Empty(updated.RejectionReason)
}

func (s *MembershipServiceSuite) TestReactivateOnlyFromCancelledOrExpired() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)

	_, err := s.service.Reactivate(s.GetContext(), "m1")
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestUploadProofSniffsContent() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)

	_, err := s.service.UploadProof(s.GetContext(), "m1", "proof.txt", []byte("just some text"))
	s.True(ierr.IsValidation(err), "content type comes from the bytes, not the filename")

	_, err = s.service.UploadProof(s.GetContext(), "m1", "proof.png", nil)
	s.True(ierr.IsValidation(err))

	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	updated, err := s.service.UploadProof(s.GetContext(), "m1", "proof.png", png)
	s.NoError(err)
	s.NotEmpty(updated.ProofPath)
}

func (s *MembershipServiceSuite) TestBulkCancelPartialFailure() {
	s.seedMembership("m1", types.MembershipStatusApproved, types.PaymentMethodOnline)
	s.seedMembership("m2", types.MembershipStatusApproved, types.PaymentMethodOnline)

	err := s.service.BulkCancel(s.GetContext(), nil, []string{"m1", "missing", "m2"}, "plan retired")
	s.Error(err)

	m1, err := s.GetStores().Membership.Get(s.GetContext(), "m1")
	s.NoError(err)
	s.Equal(types.MembershipStatusCancelled, m1.Status)
	m2, err := s.GetStores().Membership.Get(s.GetContext(), "m2")
	s.NoError(err)
	s.Equal(types.MembershipStatusCancelled, m2.Status)
}

func (s *MembershipServiceSuite) TestLifecycleMutationsReachSubscriptionViews() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)
	s.seedMembership("m2", types.MembershipStatusPending, types.PaymentMethodOnline)
	s.seedMembership("m3", types.MembershipStatusApproved, types.PaymentMethodOnline)

	// The end-user's own subscription view and the moderation queues are
	// not rebuilt by the mutation itself; they only stay correct if every
	// lifecycle mutation declares them.
	currentCalls, unsubCurrent := watchKey(s.T(), s.GetCacheStore(), membership.CurrentSubscriptionKey())
	defer unsubCurrent()
	pendingCalls, unsubPending := watchKey(s.T(), s.GetCacheStore(), membership.PendingKey(nil))
	defer unsubPending()
	statsCalls, unsubStats := watchKey(s.T(), s.GetCacheStore(), membership.StatsKey())
	defer unsubStats()

	_, err := s.service.Approve(s.GetContext(), "m1", types.PaymentMethodOnline, nil)
	s.NoError(err)
	s.waitForCalls(currentCalls, 2, "approve must reach the current-subscription view")
	s.waitForCalls(pendingCalls, 2, "approve must reach the pending queue")
	s.waitForCalls(statsCalls, 2, "approve must reach membership stats")

	_, err = s.service.Reject(s.GetContext(), "m2", "proof unreadable")
	s.NoError(err)
	s.waitForCalls(currentCalls, 3, "reject must reach the current-subscription view")

	_, err = s.service.Cancel(s.GetContext(), "m3", "user request")
	s.NoError(err)
	s.waitForCalls(currentCalls, 4, "cancel must reach the current-subscription view")
}

func (s *MembershipServiceSuite) waitForCalls(calls *atomic.Int64, want int64, msg string) {
	s.Eventually(func() bool {
		return calls.Load() >= want
	}, time.Second, 5*time.Millisecond, msg)
}

func (s *MembershipServiceSuite) TestStatsAggregate() {
	s.seedMembership("m1", types.MembershipStatusApproved, types.PaymentMethodOnline)
	s.seedMembership("m2", types.MembershipStatusApproved, types.PaymentMethodCash)
	s.seedMembership("m3", types.MembershipStatusPending, types.PaymentMethodOnline)

	stats, err := s.service.Stats(s.GetContext())
	s.NoError(err)
	s.Equal(2, stats.Approved)
	s.Equal(1, stats.Pending)
	s.True(stats.Revenue.Equal(decimal.NewFromInt(9998)))
}

func (s *MembershipServiceSuite) TestListPendingQueue() {
	s.seedMembership("m1", types.MembershipStatusPending, types.PaymentMethodOnline)
	s.seedMembership("m2", types.MembershipStatusApproved, types.PaymentMethodOnline)

	result, err := s.service.ListPending(s.GetContext(), nil)
	s.NoError(err)
	s.Len(result.Items, 1)
	s.Equal("m1", result.Items[0].ID)
}

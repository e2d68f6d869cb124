package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/vivahlink/console/internal/domain/profile"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/testutil"
	"github.com/vivahlink/console/internal/types"
)

type ProfileServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ProfileService
}

func TestProfileService(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}

func (s *ProfileServiceSuite) SetupTest() {
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
	s.service = NewProfileService(params, executor, bulk)
}

func (s *ProfileServiceSuite) seedProfile(id string, mutators ...func(*profile.Profile)) {
	p := &profile.Profile{
		ID:                 id,
		UserID:             "user-" + id,
		FullName:           "Profile " + id,
		VerificationStatus: types.VerificationStatusPending,
		IsActive:           true,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	for _, m := range mutators {
		m(p)
	}
	s.NoError(s.GetStores().Profile.Seed(s.GetContext(), p))
}

func (s *ProfileServiceSuite) TestListFiltersByStatus() {
	s.seedProfile("p1")
	s.seedProfile("p2", func(p *profile.Profile) { p.VerificationStatus = types.VerificationStatusApproved })
	s.seedProfile("p3")

	filter := types.NewProfileFilter()
	filter.VerificationStatus = lo.ToPtr(types.VerificationStatusPending)

	result, err := s.service.List(s.GetContext(), filter)
	s.NoError(err)
	s.Len(result.Items, 2)
	s.Equal(3, s.GetStores().Profile.Count(s.GetContext()))
}

func (s *ProfileServiceSuite) TestListExcludesDeleted() {
	s.seedProfile("p1")
	s.seedProfile("p2", func(p *profile.Profile) {
		now := time.Now()
		p.DeletedAt = &now
	})

	result, err := s.service.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(result.Items, 1)
	s.Equal("p1", result.Items[0].ID)

	deleted, err := s.service.ListDeleted(s.GetContext(), nil)
	s.NoError(err)
	s.Len(deleted.Items, 1)
	s.Equal("p2", deleted.Items[0].ID)
}

func (s *ProfileServiceSuite) TestDeleteMovesToDeletedSet() {
	s.seedProfile("p1")

	s.NoError(s.service.Delete(s.GetContext(), "p1"))

	p, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.True(p.IsDeleted())
	s.Equal("admin-1", p.DeletedBy)

	// Soft delete keeps verification status and visibility intact.
	s.Equal(types.VerificationStatusPending, p.VerificationStatus)
	s.True(p.IsActive)
}

func (s *ProfileServiceSuite) TestRestoreBringsProfileBack() {
	s.seedProfile("p1", func(p *profile.Profile) {
		now := time.Now()
		p.DeletedAt = &now
		p.DeletedBy = "admin-2"
	})

	s.NoError(s.service.Restore(s.GetContext(), "p1"))

	p, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.False(p.IsDeleted())
	s.Empty(p.DeletedBy)
}

func (s *ProfileServiceSuite) TestRestoreIsIdempotent() {
	s.seedProfile("p1")

	// Restoring an already-active profile is a success, not an error:
	// another admin session may have restored it first.
	s.NoError(s.service.Restore(s.GetContext(), "p1"))

	p, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.False(p.IsDeleted())
}

func (s *ProfileServiceSuite) TestBlockRequiresReason() {
	s.seedProfile("p1")

	err := s.service.Block(s.GetContext(), "p1", " ")
	s.True(ierr.IsValidation(err))

	s.NoError(s.service.Block(s.GetContext(), "p1", "spam messages"))
	p, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.True(p.Blocked)
	s.Equal("spam messages", p.BlockReason)

	s.NoError(s.service.Unblock(s.GetContext(), "p1"))
	p, err = s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.False(p.Blocked)
	s.Empty(p.BlockReason)
}

func (s *ProfileServiceSuite) TestSetActiveTogglesVisibility() {
	s.seedProfile("p1")

	s.NoError(s.service.SetActive(s.GetContext(), "p1", false))
	p, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.False(p.IsActive)

	s.NoError(s.service.SetActive(s.GetContext(), "p1", true))
	p, err = s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.True(p.IsActive)
}

func (s *ProfileServiceSuite) TestBulkDeleteUsesNativeEndpoint() {
	s.seedProfile("p1")
	s.seedProfile("p2")
	s.seedProfile("p3")

	err := s.service.Bulk(s.GetContext(), nil, types.BulkActionDelete, []string{"p1", "p3"}, "")
	s.NoError(err)

	deleted, err := s.service.ListDeleted(s.GetContext(), nil)
	s.NoError(err)
	s.Len(deleted.Items, 2)

	p2, err := s.GetStores().Profile.Get(s.GetContext(), "p2")
	s.NoError(err)
	s.False(p2.IsDeleted())
}

func (s *ProfileServiceSuite) TestBulkBlockPartialFailure() {
	s.seedProfile("p1")
	s.seedProfile("p2")

	err := s.service.Bulk(s.GetContext(), nil, types.BulkActionBlock, []string{"p1", "missing", "p2"}, "tos violation")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// Succeeded items stay applied despite the aggregate error.
	p1, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.True(p1.Blocked)
	p2, err := s.GetStores().Profile.Get(s.GetContext(), "p2")
	s.NoError(err)
	s.True(p2.Blocked)
}

func (s *ProfileServiceSuite) TestBulkBlockRequiresReason() {
	s.seedProfile("p1")

	err := s.service.Bulk(s.GetContext(), nil, types.BulkActionBlock, []string{"p1"}, "")
	s.True(ierr.IsValidation(err))

	p, err := s.GetStores().Profile.Get(s.GetContext(), "p1")
	s.NoError(err)
	s.False(p.Blocked)
}

func (s *ProfileServiceSuite) TestBulkApproveUnsupported() {
	err := s.service.Bulk(s.GetContext(), nil, types.BulkActionApprove, []string{"p1"}, "")
	s.True(ierr.IsValidation(err), "verification has no bulk path, each profile is reviewed individually")
}

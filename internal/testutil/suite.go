package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/types"
)

// Stores bundles every in-memory repository a service test may need.
type Stores struct {
	Profile    *InMemoryProfileStore
	Vendor     *InMemoryVendorStore
	Membership *InMemoryMembershipStore
	Chat       *InMemoryChatStore
	Stats      *InMemoryStatsStore
}

// BaseServiceTestSuite provides common setup for service tests: fresh
// in-memory stores, a fresh cache store and an admin actor context.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	cfg        *config.Configuration
	logger     *logger.Logger
	cacheStore *cache.Store
	stores     Stores
}

func (s *BaseServiceTestSuite) SetupSuite() {
	s.cfg = config.GetDefaultConfig()
	s.logger = logger.GetLogger()
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = types.WithActor(context.Background(), "admin-1", types.ActorRoleAdmin)
	s.cacheStore = cache.NewStore(s.cfg, s.logger)
	s.stores = Stores{
		Profile:    NewInMemoryProfileStore(),
		Vendor:     NewInMemoryVendorStore(),
		Membership: NewInMemoryMembershipStore(),
		Chat:       NewInMemoryChatStore(),
		Stats:      NewInMemoryStatsStore(),
	}
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.cacheStore.Clear()
	s.ClearStores()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.Profile.Clear()
	s.stores.Vendor.Clear()
	s.stores.Membership.Clear()
	s.stores.Chat.Clear()
	s.stores.Stats.Clear()
}

// GetContext returns a context carrying the suite's admin actor.
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetVendorContext returns a context for a non-moderator actor.
func (s *BaseServiceTestSuite) GetVendorContext(actorID string) context.Context {
	return types.WithActor(context.Background(), actorID, types.ActorRoleVendor)
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetCacheStore() *cache.Store {
	return s.cacheStore
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

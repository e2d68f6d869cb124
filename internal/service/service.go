package service

import (
	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/domain/chat"
	"github.com/vivahlink/console/internal/domain/membership"
	"github.com/vivahlink/console/internal/domain/profile"
	"github.com/vivahlink/console/internal/domain/stats"
	"github.com/vivahlink/console/internal/domain/vendor"
	"github.com/vivahlink/console/internal/logger"
)

// ServiceParams is the common dependency bundle every service embeds.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  *cache.Store

	ProfileRepo    profile.Repository
	VendorRepo     vendor.Repository
	MembershipRepo membership.Repository
	ChatRepo       chat.Repository
	StatsRepo      stats.Repository
}

package stats

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
)

// Dashboard is the console's headline counters.
type Dashboard struct {
	TotalProfiles    int `json:"total_profiles"`
	PendingProfiles  int `json:"pending_profiles"`
	ApprovedProfiles int `json:"approved_profiles"`
	RejectedProfiles int `json:"rejected_profiles"`
	DeletedProfiles  int `json:"deleted_profiles"`
	ActiveVendors    int `json:"active_vendors"`
	PendingVendors   int `json:"pending_vendors"`
	OpenChats        int `json:"open_chats"`
}

type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

// DashboardKey is the cache key for the headline counters.
func DashboardKey() cache.Key {
	return cache.NewKey(cache.ResourceStats, nil)
}

package profile

import (
	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/types"
)

// ListKey is the cache key for one page of the profile list.
func ListKey(filter *types.ProfileFilter) cache.Key {
	return cache.NewKey(cache.ResourceProfiles, filter.ScopeParams())
}

// DeletedListKey is the cache key for one page of the soft-deleted set.
func DeletedListKey(filter *types.DeletedProfileFilter) cache.Key {
	return cache.NewKey(cache.ResourceDeletedProfiles, filter.ScopeParams())
}

// DetailKey is the cache key for a single profile view.
func DetailKey(id string) cache.Key {
	return cache.NewKey(cache.ResourceProfiles, map[string]string{"id": id})
}

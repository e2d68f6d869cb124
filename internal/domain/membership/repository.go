package membership

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

type Repository interface {
	List(ctx context.Context, filter *types.MembershipFilter) (*ListResult, error)
	ListPending(ctx context.Context, filter *types.MembershipFilter) (*ListResult, error)
	Get(ctx context.Context, id string) (*Membership, error)
	Stats(ctx context.Context) (*Stats, error)

	Approve(ctx context.Context, input ApprovalInput) (*Membership, error)
	Reject(ctx context.Context, id, reason string) (*Membership, error)
	Cancel(ctx context.Context, id, reason string) (*Membership, error)
	Reactivate(ctx context.Context, id string) (*Membership, error)

	// UploadProof forwards a payment proof as an opaque multipart payload.
	UploadProof(ctx context.Context, id string, file upstream.File) (*Membership, error)
}

// ListKey is the cache key for one page of membership records.
func ListKey(filter *types.MembershipFilter) cache.Key {
	return cache.NewKey(cache.ResourceMemberships, filter.ScopeParams())
}

// PendingKey is the cache key for the pending-approval queue.
func PendingKey(filter *types.MembershipFilter) cache.Key {
	return cache.NewKey(cache.ResourcePendingMembers, filter.ScopeParams())
}

// StatsKey is the cache key for the membership dashboard aggregate.
func StatsKey() cache.Key {
	return cache.NewKey(cache.ResourceMembershipStats, nil)
}

// CurrentSubscriptionKey is the unscoped key the affected end-user's own
// session reads. The admin console never subscribes to it but must
// invalidate it on every lifecycle mutation.
func CurrentSubscriptionKey() cache.Key {
	return cache.NewKey(cache.ResourceCurrentSubscription, nil)
}

// LifecycleInvalidations is the invalidation set every membership lifecycle
// mutation declares.
func LifecycleInvalidations() []cache.KeyPattern {
	return []cache.KeyPattern{
		cache.PatternFor(cache.ResourceMemberships),
		cache.PatternFor(cache.ResourcePendingMembers),
		cache.PatternFor(cache.ResourceMembershipStats),
		cache.PatternFor(cache.ResourceCurrentSubscription),
	}
}

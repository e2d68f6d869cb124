package cache

import "net/url"

// Resource names carried in cache keys. These are invalidation scopes, not
// URL paths: a mutation that touches a resource invalidates every key under
// that resource name regardless of scope params.
const (
	ResourceProfiles        = "profiles"
	ResourceDeletedProfiles = "deleted-profiles"
	ResourceVendors         = "vendors"
	ResourceMemberships     = "memberships"
	ResourcePendingMembers  = "pending-memberships"
	ResourceMembershipStats = "membership-stats"
	// ResourceCurrentSubscription is the affected end-user's own view of
	// their active membership. The admin session never subscribes to it, but
	// membership mutations must still reach it.
	ResourceCurrentSubscription = "current-subscription"
	ResourceSupportChats        = "support-chats"
	ResourceChatMessages        = "chat-messages"
	ResourceStats               = "stats"
)

// Key identifies one server-state snapshot: a resource plus every parameter
// that affects the result set (page, search, filters, tab). Two keys are
// equal iff their canonical encodings are equal.
type Key struct {
	Resource    string
	ScopeParams map[string]string

	canonical string
}

// NewKey builds a key with a precomputed canonical encoding. Params are
// encoded sorted by name so structurally equal queries always collide onto
// the same entry.
func NewKey(resource string, scopeParams map[string]string) Key {
	k := Key{Resource: resource, ScopeParams: scopeParams}
	k.canonical = encode(resource, scopeParams)
	return k
}

func (k Key) String() string {
	if k.canonical == "" {
		k.canonical = encode(k.Resource, k.ScopeParams)
	}
	return k.canonical
}

func encode(resource string, params map[string]string) string {
	if len(params) == 0 {
		return resource
	}
	// url.Values.Encode sorts by name and escapes both sides, so params
	// carrying '&' or '=' (free-text search) cannot collide with a
	// structurally different query.
	values := make(url.Values, len(params))
	for name, value := range params {
		values.Set(name, value)
	}
	return resource + ":" + values.Encode()
}

// KeyPattern selects keys for invalidation: either one exact key, or every
// key under a resource.
type KeyPattern struct {
	resource string
	exact    *Key
}

// PatternFor matches all keys of a resource regardless of scope params.
func PatternFor(resource string) KeyPattern {
	return KeyPattern{resource: resource}
}

// PatternExact matches a single key.
func PatternExact(key Key) KeyPattern {
	return KeyPattern{resource: key.Resource, exact: &key}
}

func (p KeyPattern) Matches(k Key) bool {
	if p.exact != nil {
		return p.exact.String() == k.String()
	}
	return p.resource == k.Resource
}

// Resource returns the resource scope of the pattern.
func (p KeyPattern) Resource() string {
	return p.resource
}

package cache

import (
	"context"
	"time"
)

// Status is the fetch state of a cache entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is a point-in-time snapshot of one cache entry, safe to hand to
// renderers. Data is the last successful payload and survives both refetches
// (stale-while-revalidate) and failed fetches (display continuity).
type Entry struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	FetchedAt time.Time
	Stale     bool
}

// FetchFunc loads fresh data for a key from the upstream backend.
type FetchFunc func(ctx context.Context) (any, error)

// SubscribeOptions configures one subscription to a key.
type SubscribeOptions struct {
	// Fetch is required; it loads the key's data.
	Fetch FetchFunc
	// RefetchInterval enables polling while the subscription is active.
	// Zero disables polling.
	RefetchInterval time.Duration
	// StaleTime is how long a successful fetch stays fresh. Zero means
	// always stale: every new subscriber triggers a refetch.
	StaleTime time.Duration
	// Enabled gates fetching and polling; nil means always enabled. Used
	// for inactive tabs whose entries stay dormant instead of fetching.
	Enabled func() bool
}

func (o SubscribeOptions) enabled() bool {
	return o.Enabled == nil || o.Enabled()
}

// internal state per key; all fields guarded by the store mutex.
type entry struct {
	key       Key
	status    Status
	data      any
	err       error
	fetchedAt time.Time
	stale     bool

	// generation tags the latest issued fetch; responses carrying an older
	// generation are discarded so a superseded fetch can never overwrite a
	// fresher one.
	generation uint64
	inflight   bool

	subs map[uint64]*subscription

	// waiters are one-shot channels notified when the current fetch
	// settles, successfully or not.
	waiters []chan Entry
}

type subscription struct {
	id   uint64
	opts SubscribeOptions
	stop chan struct{}
}

func (e *entry) snapshot() Entry {
	return Entry{
		Key:       e.key,
		Status:    e.status,
		Data:      e.data,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Stale:     e.stale,
	}
}

func (e *entry) fresh(staleTime time.Duration, now time.Time) bool {
	if e.stale || e.status != StatusSuccess {
		return false
	}
	if staleTime <= 0 {
		return false
	}
	return now.Sub(e.fetchedAt) < staleTime
}

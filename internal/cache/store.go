package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/logger"
)

// Store is the process-wide query cache: a keyed map of server-state
// snapshots with subscription-driven fetching, resource-level invalidation
// and per-subscription polling.
//
// Views never mutate entries; they go through Subscribe, Snapshot and the
// mutation executor's Invalidate. A single mutex serializes all entry state,
// which together with the per-key generation counter gives the ordering
// guarantees the console relies on: within one key, only the latest issued
// fetch may apply its response.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	nextSub uint64

	// dormant holds snapshots of entries whose last subscriber left, so a
	// reopened tab rehydrates instantly while memory stays bounded by TTL.
	dormant *gocache.Cache

	cfg *config.CacheConfig
	log *logger.Logger
}

func NewStore(cfg *config.Configuration, log *logger.Logger) *Store {
	ttl := cfg.Cache.DormantTTL
	if ttl <= 0 {
		ttl = DormantTTLDefault
	}
	return &Store{
		entries: make(map[string]*entry),
		dormant: gocache.New(ttl, 2*ttl),
		cfg:     &cfg.Cache,
		log:     log,
	}
}

// Subscribe registers interest in a key. The entry is created on first
// subscription (rehydrated from a dormant snapshot when one exists) and a
// fetch is triggered unless a fresh result or an in-flight fetch already
// covers it. The returned func unsubscribes; when the last subscriber of a
// key leaves, polling stops and the entry goes dormant.
func (s *Store) Subscribe(ctx context.Context, key Key, opts SubscribeOptions) func() {
	s.mu.Lock()

	e := s.entries[key.String()]
	if e == nil {
		e = &entry{key: key, status: StatusIdle, stale: true, subs: make(map[uint64]*subscription)}
		if snap, ok := s.dormant.Get(key.String()); ok {
			prev := snap.(Entry)
			e.status = prev.Status
			e.data = prev.Data
			e.err = prev.Err
			e.fetchedAt = prev.FetchedAt
			e.stale = true
		}
		s.entries[key.String()] = e
	}

	s.nextSub++
	sub := &subscription{id: s.nextSub, opts: opts, stop: make(chan struct{})}
	e.subs[sub.id] = sub

	staleTime := opts.StaleTime
	if staleTime == 0 {
		staleTime = s.cfg.StaleTime
	}

	if opts.enabled() && !e.fresh(staleTime, time.Now()) {
		s.startFetch(ctx, e, opts.Fetch, false)
	}
	s.mu.Unlock()

	if opts.RefetchInterval > 0 {
		go s.poll(ctx, key, sub)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			close(sub.stop)
			s.mu.Lock()
			defer s.mu.Unlock()
			cur := s.entries[key.String()]
			if cur == nil {
				return
			}
			delete(cur.subs, sub.id)
			if len(cur.subs) == 0 {
				// Nobody is keeping this view current anymore; the
				// payload survives but must not read as fresh.
				cur.stale = true
				if s.cfg.Enabled {
					s.dormant.SetDefault(key.String(), cur.snapshot())
				}
			}
		})
	}
}

// Snapshot returns the current state of a key without blocking. Unknown keys
// yield an idle, stale entry (possibly rehydrated from the dormant store).
func (s *Store) Snapshot(key Key) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key.String()]; ok {
		return e.snapshot()
	}
	if snap, ok := s.dormant.Get(key.String()); ok {
		prev := snap.(Entry)
		prev.Stale = true
		return prev
	}
	return Entry{Key: key, Status: StatusIdle, Stale: true}
}

// Invalidate marks every matching entry stale. Entries with at least one
// active subscriber refetch immediately, superseding any in-flight fetch;
// subscriber-less entries (including dormant snapshots) stay stale and fetch
// lazily on their next subscription.
func (s *Store) Invalidate(patterns ...KeyPattern) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range patterns {
		for _, e := range s.entries {
			if !p.Matches(e.key) {
				continue
			}
			e.stale = true
			if fetch, ok := s.activeFetcher(e); ok {
				s.startFetch(context.Background(), e, fetch, true)
			}
		}
		for keyStr, snap := range s.dormant.Items() {
			prev := snap.Object.(Entry)
			if p.Matches(prev.Key) {
				prev.Stale = true
				s.dormant.SetDefault(keyStr, prev)
			}
		}
	}
}

// Retry re-fetches a key after a failed fetch. It is a no-op while a fetch
// is already in flight or when the key has no active subscriber; failed
// entries are never retried in a loop, only on explicit retry, polling tick
// or re-subscription.
func (s *Store) Retry(ctx context.Context, key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[key.String()]
	if e == nil {
		return
	}
	if fetch, ok := s.activeFetcher(e); ok {
		s.startFetch(ctx, e, fetch, false)
	}
}

// AwaitSnapshot blocks until the key's in-flight fetch settles and returns
// the resulting snapshot. When no fetch is in flight it returns immediately;
// Snapshot remains the non-blocking read for renderers.
func (s *Store) AwaitSnapshot(ctx context.Context, key Key) (Entry, error) {
	s.mu.Lock()
	e := s.entries[key.String()]
	if e == nil {
		s.mu.Unlock()
		return Entry{Key: key, Status: StatusIdle, Stale: true}, nil
	}
	if !e.inflight {
		snap := e.snapshot()
		s.mu.Unlock()
		return snap, nil
	}

	w := make(chan Entry, 1)
	e.waiters = append(e.waiters, w)
	s.mu.Unlock()

	select {
	case snap := <-w:
		return snap, nil
	case <-ctx.Done():
		return Entry{Key: key, Status: StatusLoading, Stale: true}, ctx.Err()
	}
}

// Clear drops every entry and dormant snapshot. Called at logout; callers
// are expected to have torn down subscriptions first.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
	s.dormant.Flush()
	s.log.Infow("query cache cleared")
}

// activeFetcher returns a fetch func from any enabled subscriber.
func (s *Store) activeFetcher(e *entry) (FetchFunc, bool) {
	for _, sub := range e.subs {
		if sub.opts.enabled() && sub.opts.Fetch != nil {
			return sub.opts.Fetch, true
		}
	}
	return nil, false
}

// startFetch launches a fetch for the entry unless one is already in flight
// (force bypasses the de-dup so invalidation supersedes the running fetch).
// Must hold s.mu.
func (s *Store) startFetch(ctx context.Context, e *entry, fetch FetchFunc, force bool) {
	if fetch == nil {
		return
	}
	if e.inflight && !force {
		return
	}

	e.generation++
	gen := e.generation
	e.inflight = true
	e.status = StatusLoading
	key := e.key

	go func() {
		data, err := fetch(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		cur := s.entries[key.String()]
		if cur == nil || gen != cur.generation {
			// Superseded by a newer fetch or by Clear; drop the response.
			return
		}
		cur.inflight = false
		cur.fetchedAt = time.Now()
		if err != nil {
			cur.status = StatusError
			cur.err = err
			s.log.Warnw("cache fetch failed", "key", key.String(), "error", err)
		} else {
			cur.status = StatusSuccess
			cur.data = data
			cur.err = nil
			cur.stale = false
		}

		snap := cur.snapshot()
		for _, w := range cur.waiters {
			w <- snap
		}
		cur.waiters = nil
	}()
}

// poll drives a subscription's refetch interval until it unsubscribes.
func (s *Store) poll(ctx context.Context, key Key, sub *subscription) {
	ticker := time.NewTicker(sub.opts.RefetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sub.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !sub.opts.enabled() {
				continue
			}
			s.mu.Lock()
			if e := s.entries[key.String()]; e != nil {
				if _, active := e.subs[sub.id]; active {
					s.startFetch(ctx, e, sub.opts.Fetch, false)
				}
			}
			s.mu.Unlock()
		}
	}
}

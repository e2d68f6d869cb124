package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(config.GetDefaultConfig(), logger.GetLogger())
}

func countingFetch(counter *atomic.Int64) FetchFunc {
	return func(ctx context.Context) (any, error) {
		n := counter.Add(1)
		return n, nil
	}
}

func TestSubscribeFetchesOnFirstSubscription(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: countingFetch(&calls)})
	defer unsub()

	snap, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, int64(1), snap.Data)
	assert.False(t, snap.Stale)
	assert.Equal(t, int64(1), calls.Load())
}

func TestSnapshotUnknownKeyIsIdle(t *testing.T) {
	store := newTestStore(t)

	snap := store.Snapshot(NewKey(ResourceVendors, nil))
	assert.Equal(t, StatusIdle, snap.Status)
	assert.True(t, snap.Stale)
	assert.Nil(t, snap.Data)
}

func TestConcurrentSubscribersShareOneFetch(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	release := make(chan struct{})
	var calls atomic.Int64
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "data", nil
	}

	unsub1 := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: fetch})
	defer unsub1()
	unsub2 := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: fetch})
	defer unsub2()

	close(release)
	snap, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "data", snap.Data)
	assert.Equal(t, int64(1), calls.Load(), "identical concurrent subscriptions must share the in-flight fetch")
}

func TestSupersededFetchResponseIsDropped(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls atomic.Int64
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
			return "old", nil
		}
		return "new", nil
	}

	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: fetch})
	defer unsub()
	<-firstStarted

	// An invalidation supersedes the running fetch with a fresh one.
	store.Invalidate(PatternFor(ResourceProfiles))

	snap, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "new", snap.Data)

	// The superseded response lands later and must not overwrite.
	close(releaseFirst)
	assert.Never(t, func() bool {
		return store.Snapshot(key).Data == "old"
	}, 100*time.Millisecond, 10*time.Millisecond, "stale response overwrote a newer one")
}

func TestInvalidateRefetchesSubscribedEntries(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: countingFetch(&calls)})
	defer unsub()

	_, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, int64(1), calls.Load())

	store.Invalidate(PatternFor(ResourceProfiles))

	assert.Eventually(t, func() bool {
		snap := store.Snapshot(key)
		return snap.Data == int64(2) && !snap.Stale
	}, time.Second, 10*time.Millisecond, "a subscribed entry must refetch immediately on invalidation")
}

func TestInvalidateLeavesSubscriberlessEntriesStale(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceMemberships, map[string]string{"page": "1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: countingFetch(&calls)})
	_, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	unsub()

	store.Invalidate(PatternFor(ResourceMemberships))

	snap := store.Snapshot(key)
	assert.True(t, snap.Stale, "invalidation must reach keys without subscribers")
	assert.Equal(t, int64(1), snap.Data, "last payload is kept for instant rehydration")
	assert.Equal(t, int64(1), calls.Load(), "no subscriber means no eager refetch")
}

func TestInvalidationScopeIsTheResource(t *testing.T) {
	store := newTestStore(t)
	profilesKey := NewKey(ResourceProfiles, map[string]string{"page": "1"})
	vendorsKey := NewKey(ResourceVendors, map[string]string{"page": "1"})

	var profileCalls, vendorCalls atomic.Int64
	unsub1 := store.Subscribe(context.Background(), profilesKey, SubscribeOptions{Fetch: countingFetch(&profileCalls)})
	defer unsub1()
	unsub2 := store.Subscribe(context.Background(), vendorsKey, SubscribeOptions{Fetch: countingFetch(&vendorCalls)})
	defer unsub2()

	_, err := store.AwaitSnapshot(context.Background(), profilesKey)
	require.NoError(t, err)
	_, err = store.AwaitSnapshot(context.Background(), vendorsKey)
	require.NoError(t, err)

	store.Invalidate(PatternFor(ResourceProfiles))

	assert.Eventually(t, func() bool {
		return profileCalls.Load() == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), vendorCalls.Load(), "unrelated resources must not refetch")
}

func TestFailedFetchKeepsPreviousData(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	var calls atomic.Int64
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "good", nil
		}
		return nil, assert.AnError
	}

	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: fetch})
	defer unsub()
	_, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)

	store.Invalidate(PatternFor(ResourceProfiles))

	assert.Eventually(t, func() bool {
		return store.Snapshot(key).Status == StatusError
	}, time.Second, 10*time.Millisecond)

	snap := store.Snapshot(key)
	assert.Equal(t, "good", snap.Data, "display continuity: the last payload survives a failed refetch")
	assert.Error(t, snap.Err)
}

func TestRetryRefetchesAfterFailure(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	var calls atomic.Int64
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, assert.AnError
		}
		return "recovered", nil
	}

	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: fetch})
	defer unsub()

	snap, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, StatusError, snap.Status)

	// No automatic retry loop: the count stays put until an explicit retry.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int64(1), calls.Load())

	store.Retry(context.Background(), key)
	snap, err = store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, "recovered", snap.Data)
}

func TestDormantEntryRehydratesOnResubscribe(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceSupportChats, map[string]string{"page": "1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: countingFetch(&calls)})
	_, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	unsub()

	// The snapshot survives the last unsubscribe, marked stale.
	snap := store.Snapshot(key)
	assert.Equal(t, int64(1), snap.Data)
	assert.True(t, snap.Stale)

	// A new subscription serves the old payload and refetches.
	unsub2 := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: countingFetch(&calls)})
	defer unsub2()
	snap2, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap2.Data)
}

func TestPollingStopsOnUnsubscribe(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceChatMessages, map[string]string{"chat_id": "c1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{
		Fetch:           countingFetch(&calls),
		RefetchInterval: 20 * time.Millisecond,
	})

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, time.Second, 5*time.Millisecond, "polling must keep refetching while subscribed")

	unsub()
	after := calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), after+1, "polling must stop when the subscription ends")
}

func TestDisabledSubscriptionDoesNotFetch(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{
		Fetch:   countingFetch(&calls),
		Enabled: func() bool { return false },
	})
	defer unsub()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), calls.Load())
	assert.Equal(t, StatusIdle, store.Snapshot(key).Status)
}

func TestClearDropsEverything(t *testing.T) {
	store := newTestStore(t)
	key := NewKey(ResourceProfiles, map[string]string{"page": "1"})

	var calls atomic.Int64
	unsub := store.Subscribe(context.Background(), key, SubscribeOptions{Fetch: countingFetch(&calls)})
	_, err := store.AwaitSnapshot(context.Background(), key)
	require.NoError(t, err)
	unsub()

	store.Clear()

	snap := store.Snapshot(key)
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Nil(t, snap.Data, "no session data survives a clear")
}

func TestSnapshotDataTypeMismatch(t *testing.T) {
	e := Entry{Data: "not-a-number"}
	_, ok := SnapshotData[int](e)
	assert.False(t, ok)

	v, ok := SnapshotData[string](e)
	assert.True(t, ok)
	assert.Equal(t, "not-a-number", *v)
}

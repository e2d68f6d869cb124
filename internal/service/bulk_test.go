package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/config"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
)

func newBulkCoordinator(t *testing.T) (BulkCoordinator, *cache.Store) {
	t.Helper()
	store := cache.NewStore(config.GetDefaultConfig(), logger.GetLogger())
	executor := NewMutationExecutor(store, logger.GetLogger())
	return NewBulkCoordinator(executor, store, logger.GetLogger()), store
}

func TestBulkFanOutRunsEveryID(t *testing.T) {
	coordinator, _ := newBulkCoordinator(t)

	var mu sync.Mutex
	seen := map[string]bool{}

	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name: "profiles.activate",
		IDs:  []string{"a", "b", "c"},
		RunEach: func(ctx context.Context, id string) error {
			mu.Lock()
			seen[id] = true
			mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)
}

func TestBulkDeduplicatesSelection(t *testing.T) {
	coordinator, _ := newBulkCoordinator(t)

	var mu sync.Mutex
	var calls []string

	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name: "profiles.activate",
		IDs:  []string{"a", "", "b", "a", "b"},
		RunEach: func(ctx context.Context, id string) error {
			mu.Lock()
			calls = append(calls, id)
			mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)
	assert.Len(t, calls, 2, "duplicate and empty ids must be dropped before the fan-out")
}

func TestBulkPartialFailureStillInvalidates(t *testing.T) {
	coordinator, store := newBulkCoordinator(t)

	key := cache.NewKey(cache.ResourceProfiles, map[string]string{"page": "1"})
	calls, unsub := watchKey(t, store, key)
	defer unsub()

	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name:        "profiles.activate",
		IDs:         []string{"ok-1", "bad", "ok-2"},
		Invalidates: []cache.KeyPattern{cache.PatternFor(cache.ResourceProfiles)},
		RunEach: func(ctx context.Context, id string) error {
			if id == "bad" {
				return ierr.NewError("no such profile").Mark(ierr.ErrNotFound)
			}
			return nil
		},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err), "partial failure surfaces as one aggregate error")

	// Succeeded items stay applied; views must refetch to show the partial
	// result, so invalidation happens despite the error.
	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestBulkReasonCheckedBeforeAnyCall(t *testing.T) {
	coordinator, _ := newBulkCoordinator(t)

	var called bool
	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name:        "profiles.block",
		IDs:         []string{"a"},
		NeedsReason: true,
		Reason:      "   ",
		RunEach: func(ctx context.Context, id string) error {
			called = true
			return nil
		},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.False(t, called, "nothing goes upstream without a reason")
}

func TestBulkEmptySelection(t *testing.T) {
	coordinator, _ := newBulkCoordinator(t)

	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name:    "profiles.activate",
		IDs:     nil,
		RunEach: func(ctx context.Context, id string) error { return nil },
	})
	assert.True(t, ierr.IsValidation(err))
}

func TestBulkAlwaysExitsBulkMode(t *testing.T) {
	coordinator, _ := newBulkCoordinator(t)

	selection := NewSelectionSet()
	selection.EnterBulkMode()
	selection.Toggle("a")
	selection.Toggle("b")

	err := coordinator.Execute(context.Background(), selection, BulkRequest{
		Name: "profiles.activate",
		IDs:  selection.IDs(),
		RunEach: func(ctx context.Context, id string) error {
			if id == "b" {
				return ierr.NewError("boom").Mark(ierr.ErrServer)
			}
			return nil
		},
	})
	require.Error(t, err)
	assert.False(t, selection.BulkMode(), "bulk mode exits even on failure")
	assert.Empty(t, selection.IDs())
}

func TestBulkNativeEndpointGetsFullList(t *testing.T) {
	coordinator, store := newBulkCoordinator(t)

	key := cache.NewKey(cache.ResourceDeletedProfiles, map[string]string{"page": "1"})
	calls, unsub := watchKey(t, store, key)
	defer unsub()

	var got []string
	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name:        "profiles.delete",
		IDs:         []string{"a", "b"},
		Invalidates: []cache.KeyPattern{cache.PatternFor(cache.ResourceDeletedProfiles)},
		RunBulk: func(ctx context.Context, ids []string) error {
			got = ids
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestBulkNativeFailureDoesNotInvalidate(t *testing.T) {
	coordinator, store := newBulkCoordinator(t)

	key := cache.NewKey(cache.ResourceProfiles, map[string]string{"page": "1"})
	calls, unsub := watchKey(t, store, key)
	defer unsub()

	err := coordinator.Execute(context.Background(), nil, BulkRequest{
		Name:        "profiles.delete",
		IDs:         []string{"a"},
		Invalidates: []cache.KeyPattern{cache.PatternFor(cache.ResourceProfiles)},
		RunBulk: func(ctx context.Context, ids []string) error {
			return ierr.NewError("boom").Mark(ierr.ErrServer)
		},
	})
	require.Error(t, err)

	// A native bulk call is atomic upstream: nothing changed, nothing to
	// refetch.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

package service

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	ierr "github.com/vivahlink/console/internal/errors"
)

// readThrough serves one request from the query cache: subscribe (creating
// or rehydrating the entry and de-duplicating against concurrent identical
// requests), wait for the in-flight fetch to settle, and unsubscribe. On a
// failed fetch the previous payload, when one exists, is still served so
// views keep showing the last known state.
func readThrough[T any](ctx context.Context, store *cache.Store, key cache.Key, fetch cache.FetchFunc) (*T, error) {
	unsubscribe := store.Subscribe(ctx, key, cache.SubscribeOptions{Fetch: fetch})
	defer unsubscribe()

	entry, err := store.AwaitSnapshot(ctx, key)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The request was cancelled").
			Mark(ierr.ErrInternal)
	}

	if data, ok := cache.SnapshotData[T](entry); ok {
		return data, nil
	}
	if entry.Err != nil {
		return nil, entry.Err
	}
	return nil, ierr.NewError("cache entry has no data").
		WithReportableDetails(map[string]interface{}{"key": key.String()}).
		Mark(ierr.ErrInternal)
}

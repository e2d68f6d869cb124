package profile

import (
	"context"

	"github.com/vivahlink/console/internal/types"
)

// ListResult is one page of profiles with its pagination envelope.
type ListResult struct {
	Items      []*Profile               `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// Repository is the console's view of the backend's profile endpoints.
// Every mutation is idempotent per id (a backend contract): re-approving an
// approved profile or restoring an active one is a no-op upstream.
type Repository interface {
	List(ctx context.Context, filter *types.ProfileFilter) (*ListResult, error)
	ListDeleted(ctx context.Context, filter *types.DeletedProfileFilter) (*ListResult, error)
	Get(ctx context.Context, id string) (*Profile, error)

	Approve(ctx context.Context, id string) (*Profile, error)
	Reject(ctx context.Context, id, reason string) (*Profile, error)
	Reapply(ctx context.Context, id string) (*Profile, error)

	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Block(ctx context.Context, id, reason string) error
	Unblock(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error

	// Native bulk endpoints; actions without one fan out per id through the
	// bulk coordinator instead.
	BulkDelete(ctx context.Context, ids []string) error
	BulkRestore(ctx context.Context, ids []string) error
}

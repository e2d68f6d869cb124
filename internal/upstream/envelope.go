package upstream

import (
	"github.com/vivahlink/console/internal/types"
)

// ListResponse is the upstream list envelope shared by every list endpoint.
type ListResponse[T any] struct {
	Items      []T                      `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

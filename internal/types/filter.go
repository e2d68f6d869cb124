package types

import (
	"strconv"
	"strings"

	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/samber/lo"
)

const (
	FilterDefaultLimit = 20
	FilterMaxLimit     = 200
)

// QueryFilter is the base list filter shared by every resource: page-based
// pagination, free-text search, sort. Fields are pointers so zero values and
// "not provided" stay distinct when binding query strings.
type QueryFilter struct {
	Page   *int    `json:"page,omitempty" form:"page" validate:"omitempty,min=1"`
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=200"`
	Search *string `json:"search,omitempty" form:"search" validate:"omitempty"`
	Sort   *string `json:"sort,omitempty" form:"sort" validate:"omitempty"`
	Order  *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
}

// NewDefaultQueryFilter creates a filter with default pagination.
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Page:  lo.ToPtr(1),
		Limit: lo.ToPtr(FilterDefaultLimit),
	}
}

// NewNoLimitQueryFilter creates a filter without pagination bounds.
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{}
}

func (f *QueryFilter) GetPage() int {
	if f == nil || f.Page == nil {
		return 1
	}
	return *f.Page
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return FilterDefaultLimit
	}
	return *f.Limit
}

func (f *QueryFilter) GetSearch() string {
	if f == nil || f.Search == nil {
		return ""
	}
	return strings.TrimSpace(*f.Search)
}

func (f *QueryFilter) GetSort() string {
	if f == nil || f.Sort == nil {
		return ""
	}
	return *f.Sort
}

func (f *QueryFilter) GetOrder() string {
	if f == nil || f.Order == nil {
		return ""
	}
	return *f.Order
}

func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Page != nil && *f.Page < 1 {
		return ierr.NewError("page must be at least 1").
			WithHint("Page numbers start at 1").
			Mark(ierr.ErrValidation)
	}
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > FilterMaxLimit) {
		return ierr.NewErrorf("limit must be between 1 and %d", FilterMaxLimit).
			WithHint("Invalid page size").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ScopeParams contributes the base filter's cache-key parameters. Only
// non-default values are emitted so equivalent queries encode identically.
func (f *QueryFilter) ScopeParams() map[string]string {
	params := map[string]string{
		"page":  strconv.Itoa(f.GetPage()),
		"limit": strconv.Itoa(f.GetLimit()),
	}
	if s := f.GetSearch(); s != "" {
		params["search"] = s
	}
	if s := f.GetSort(); s != "" {
		params["sort"] = s
	}
	if o := f.GetOrder(); o != "" {
		params["order"] = o
	}
	return params
}

// ToQuery renders the filter as upstream query-string parameters.
func (f *QueryFilter) ToQuery() map[string]string {
	return f.ScopeParams()
}

// PaginationResponse mirrors the upstream list envelope.
type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

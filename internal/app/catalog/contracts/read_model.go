package contracts

import (
	"context"
	"strings"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// Pagination bounds. The storefront grid loads 12 cards per page.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// AllFilterValue is the neutral value the storefront sends for category and
// store when nothing is selected. It means "no filter".
const AllFilterValue = "todas"

// ListFilter defines filtering and pagination for entry listings.
type ListFilter struct {
	Category string
	Store    string
	Search   string
	Page     int
	PageSize int
}

// Normalize lowercases the filter terms, collapses the neutral "todas"
// value to no filter, and clamps pagination to sane bounds. Both the SQL
// filter and the cache fingerprint build on the normalized form, so
// equivalent requests always share one query and one cache entry.
func (f *ListFilter) Normalize() {
	f.Category = normalizeTerm(f.Category)
	if f.Category == AllFilterValue {
		f.Category = ""
	}
	f.Store = normalizeTerm(f.Store)
	if f.Store == AllFilterValue {
		f.Store = ""
	}
	f.Search = normalizeTerm(f.Search)

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ListResult is one page of entries plus the unpaginated total.
type ListResult struct {
	Entries []*domain.EntrySnapshot `json:"data"`
	Total   int64                   `json:"total"`
}

// ReadModel serves entry queries, bypassing the aggregate for performance.
type ReadModel interface {
	// GetByID returns one entry snapshot, or domain.ErrEntryNotFound.
	GetByID(ctx context.Context, entryID string) (*domain.EntrySnapshot, error)

	// List returns a filtered, paginated page of entries.
	List(ctx context.Context, filter *ListFilter) (*ListResult, error)
}

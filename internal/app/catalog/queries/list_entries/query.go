package list_entries

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/cache"
)

// Request contains filtering and pagination parameters.
type Request struct {
	Category string
	Store    string
	Search   string
	Page     int
	PageSize int
}

// Query handles the list entries query use case. Result pages are cached by
// query fingerprint; every mutation clears the whole cache, so a hit is
// never older than the last write (plus the TTL bound between writes).
type Query struct {
	readModel contracts.ReadModel
	cache     *cache.ResultCache
}

// NewQuery creates a new list entries query.
func NewQuery(readModel contracts.ReadModel, resultCache *cache.ResultCache) *Query {
	return &Query{
		readModel: readModel,
		cache:     resultCache,
	}
}

// Execute retrieves a filtered, paginated page of entries, newest first,
// serving from the result cache when possible.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	filter := &contracts.ListFilter{
		Category: req.Category,
		Store:    req.Store,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	fingerprint := cache.Fingerprint(filter)
	if page, ok := q.cache.Lookup(fingerprint); ok {
		return page, nil
	}

	page, err := q.readModel.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	q.cache.Store(fingerprint, page)
	return page, nil
}

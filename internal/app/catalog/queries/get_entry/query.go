package get_entry

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// Query handles the get entry query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get entry query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a single entry snapshot by id.
func (q *Query) Execute(ctx context.Context, entryID string) (*domain.EntrySnapshot, error) {
	return q.readModel.GetByID(ctx, entryID)
}

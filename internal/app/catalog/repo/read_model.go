package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_entry"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel on Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{client: client}
}

// GetByID returns one entry snapshot.
func (rm *ReadModelImpl) GetByID(ctx context.Context, entryID string) (*domain.EntrySnapshot, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_entry.TableName, spanner.Key{entryID}, m_entry.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrEntryNotFound
		}
		return nil, &domain.StorageError{Op: "read", Err: err}
	}

	var data m_entry.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, &domain.StorageError{Op: "read", Err: fmt.Errorf("failed to parse entry: %w", err)}
	}

	return dataToSnapshot(&data)
}

// List returns a filtered, paginated page of entries, newest first.
func (rm *ReadModelImpl) List(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	filter.Normalize()

	base := query.From(m_entry.TableName)
	if filter.Category != "" {
		base = base.Where(query.Eq(m_entry.Category, filter.Category))
	}
	if filter.Store != "" {
		base = base.Where(query.Eq(m_entry.Store, filter.Store))
	}
	if filter.Search != "" {
		base = base.Where(query.Contains(m_entry.Name, filter.Search))
	}

	stmt := base.
		Select(m_entry.Columns...).
		OrderBy(m_entry.CreatedAt, query.Desc).
		Limit(int64(filter.PageSize)).
		Offset(int64((filter.Page - 1) * filter.PageSize)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	entries := make([]*domain.EntrySnapshot, 0, filter.PageSize)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &domain.StorageError{Op: "query", Err: err}
		}

		var data m_entry.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, &domain.StorageError{Op: "query", Err: fmt.Errorf("failed to parse entry: %w", err)}
		}

		snap, err := dataToSnapshot(&data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, snap)
	}

	total, err := rm.count(ctx, base)
	if err != nil {
		return nil, err
	}

	return &contracts.ListResult{Entries: entries, Total: total}, nil
}

// count runs the COUNT(*) companion statement for the same filter.
func (rm *ReadModelImpl) count(ctx context.Context, base *query.Builder) (int64, error) {
	iter := rm.client.Single().Query(ctx, base.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, &domain.StorageError{Op: "count", Err: err}
	}

	var total int64
	if err := row.Column(0, &total); err != nil {
		return 0, &domain.StorageError{Op: "count", Err: err}
	}
	return total, nil
}

// dataToSnapshot converts a row straight to the API projection.
func dataToSnapshot(data *m_entry.Data) (*domain.EntrySnapshot, error) {
	price, err := domain.NewMoney(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: fmt.Errorf("invalid price: %w", err)}
	}

	return &domain.EntrySnapshot{
		ID:          data.EntryID,
		Name:        data.Name,
		Description: data.Description,
		Price:       price.Float64(),
		Images:      data.Images,
		Category:    data.Category,
		Store:       data.Store,
		Link:        data.Link,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}, nil
}

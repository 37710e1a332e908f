package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_entry"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// EntryRepo implements EntryRepository on Spanner. Each call builds a commit
// plan and applies it atomically, so a returned error always means nothing
// was written.
type EntryRepo struct {
	committer *committer.Committer
	client    *spanner.Client
	model     *m_entry.Model
	clock     clock.Clock
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(client *spanner.Client, comm *committer.Committer, clk clock.Clock) contracts.EntryRepository {
	return &EntryRepo{
		committer: comm,
		client:    client,
		model:     m_entry.NewModel(),
		clock:     clk,
	}
}

// Insert persists a new entry.
func (r *EntryRepo) Insert(ctx context.Context, entry *domain.Entry) error {
	data, err := r.domainToData(entry)
	if err != nil {
		return &domain.StorageError{Op: "insert", Err: err}
	}

	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(data))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return &domain.StorageError{Op: "insert", Err: err}
	}
	return nil
}

// Update persists the entry's dirty fields. updated_at is always written,
// so even a field-identical update commits a row change.
func (r *EntryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	changes := entry.Changes()
	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_entry.Name] = entry.Name()
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_entry.Description] = entry.Description()
	}
	if changes.Dirty(domain.FieldPrice) {
		price := entry.Price()
		if !price.IsSafeForStorage() {
			return &domain.StorageError{Op: "update", Err: domain.ErrMoneyOverflow}
		}
		updates[m_entry.PriceNumerator] = price.Num()
		updates[m_entry.PriceDenominator] = price.Denom()
	}
	if changes.Dirty(domain.FieldImages) {
		updates[m_entry.Images] = entry.Images()
	}
	if changes.Dirty(domain.FieldCategory) {
		updates[m_entry.Category] = entry.Category()
	}
	if changes.Dirty(domain.FieldStore) {
		updates[m_entry.Store] = entry.Store()
	}
	if changes.Dirty(domain.FieldLink) {
		updates[m_entry.Link] = entry.Link()
	}

	updates[m_entry.UpdatedAt] = r.clock.Now()

	plan := committer.NewPlan()
	plan.Add(r.model.UpdateMut(entry.ID(), updates))

	if err := r.committer.Apply(ctx, plan); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrEntryNotFound
		}
		return &domain.StorageError{Op: "update", Err: err}
	}
	return nil
}

// Delete removes an entry row. Deleting an already absent key is a no-op at
// this layer; existence is the usecase's concern.
func (r *EntryRepo) Delete(ctx context.Context, entryID string) error {
	plan := committer.NewPlan()
	plan.Add(r.model.DeleteMut(entryID))

	if err := r.committer.Apply(ctx, plan); err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	return nil
}

// GetByID reads one row and reconstructs the aggregate.
func (r *EntryRepo) GetByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	row, err := r.client.Single().ReadRow(ctx, m_entry.TableName, spanner.Key{entryID}, m_entry.Columns)
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

	return dataToDomain(&data)
}

// domainToData converts the aggregate to a database row.
func (r *EntryRepo) domainToData(entry *domain.Entry) (*m_entry.Data, error) {
	price := entry.Price()
	if !price.IsSafeForStorage() {
		return nil, fmt.Errorf("price exceeds storage capacity: %w", domain.ErrMoneyOverflow)
	}

	return &m_entry.Data{
		EntryID:          entry.ID(),
		Name:             entry.Name(),
		Description:      entry.Description(),
		PriceNumerator:   price.Num(),
		PriceDenominator: price.Denom(),
		Images:           entry.Images(),
		Category:         entry.Category(),
		Store:            entry.Store(),
		Link:             entry.Link(),
		CreatedAt:        entry.CreatedAt(),
		UpdatedAt:        entry.UpdatedAt(),
	}, nil
}

// dataToDomain converts a database row back into the aggregate.
func dataToDomain(data *m_entry.Data) (*domain.Entry, error) {
	price, err := domain.NewMoney(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Err: fmt.Errorf("invalid price: %w", err)}
	}

	return domain.ReconstructEntry(
		data.EntryID,
		data.Name,
		data.Description,
		price,
		data.Images,
		data.Category,
		data.Store,
		data.Link,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

package contracts

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// EntryRepository is the storage collaborator for catalog entries. The
// Spanner implementation commits each call atomically; usecases treat a
// returned error as "nothing was persisted" and publish no events for it.
type EntryRepository interface {
	// Insert persists a new entry.
	Insert(ctx context.Context, entry *domain.Entry) error

	// Update persists the entry's dirty fields and always stamps updated_at.
	Update(ctx context.Context, entry *domain.Entry) error

	// Delete removes an entry row.
	Delete(ctx context.Context, entryID string) error

	// GetByID reconstructs the aggregate, or domain.ErrEntryNotFound.
	GetByID(ctx context.Context, entryID string) (*domain.Entry, error)
}

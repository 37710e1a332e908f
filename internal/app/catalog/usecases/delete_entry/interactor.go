package delete_entry

import (
	"context"
	"fmt"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/logging"
)

// Request identifies the entry to delete.
type Request struct {
	ID string
}

// Interactor handles the delete entry use case.
type Interactor struct {
	repo      contracts.EntryRepository
	media     contracts.MediaHost
	publisher contracts.EventPublisher
}

// NewInteractor creates a new delete entry interactor.
func NewInteractor(
	repo contracts.EntryRepository,
	media contracts.MediaHost,
	publisher contracts.EventPublisher,
) *Interactor {
	return &Interactor{
		repo:      repo,
		media:     media,
		publisher: publisher,
	}
}

// Execute deletes an entry. The row delete is authoritative; media cleanup
// is best-effort and a failed image delete only logs. The deleted event is
// published once the row is gone.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	entry, err := i.repo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if err := i.repo.Delete(ctx, entry.ID()); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	for _, url := range entry.Images() {
		if err := i.media.Delete(ctx, url); err != nil {
			logging.Warn().Str("entry_id", entry.ID()).Str("image_url", url).Err(err).
				Msg("failed to remove image from media host")
		}
	}

	i.publisher.Publish(&domain.EntryDeletedEvent{ID: entry.ID()})

	logging.Info().Str("entry_id", entry.ID()).Msg("catalog entry deleted")
	return nil
}

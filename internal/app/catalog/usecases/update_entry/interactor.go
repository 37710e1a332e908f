package update_entry

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/logging"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// Request contains the data needed to update a catalog entry. All scalar
// fields are required; Images is optional and, when empty, the entry keeps
// its current image list.
type Request struct {
	ID          string
	Name        string
	Description string
	Price       *domain.Money
	Category    string
	Store       string
	Link        string
	Images      []contracts.ImageUpload
}

// Interactor handles the update entry use case.
type Interactor struct {
	repo      contracts.EntryRepository
	media     contracts.MediaHost
	publisher contracts.EventPublisher
	clock     clock.Clock
}

// NewInteractor creates a new update entry interactor.
func NewInteractor(
	repo contracts.EntryRepository,
	media contracts.MediaHost,
	publisher contracts.EventPublisher,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		repo:      repo,
		media:     media,
		publisher: publisher,
		clock:     clk,
	}
}

// Execute updates an existing entry. Validation runs before the aggregate is
// loaded or any image is uploaded. A request without images retains the
// stored image list; a request with images replaces it wholesale. Exactly
// one updated event is published once the commit succeeds.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.EntrySnapshot, error) {
	if err := domain.ValidateEntryInput(req.Name, req.Price, req.Category, req.Store, req.Link); err != nil {
		return nil, err
	}

	entry, err := i.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	var urls []string
	if len(req.Images) > 0 {
		urls, err = uploadAll(ctx, i.media, req.Images)
		if err != nil {
			return nil, err
		}
	}

	if err := entry.SetName(req.Name); err != nil {
		return nil, err
	}
	entry.SetDescription(req.Description)
	if err := entry.SetPrice(req.Price); err != nil {
		return nil, err
	}
	if err := entry.SetCategory(req.Category); err != nil {
		return nil, err
	}
	if err := entry.SetStore(req.Store); err != nil {
		return nil, err
	}
	if err := entry.SetLink(req.Link); err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		if err := entry.ReplaceImages(urls); err != nil {
			return nil, err
		}
	}

	entry.MarkUpdated(i.clock.Now())

	if err := i.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist entry: %w", err)
	}

	for _, event := range entry.DomainEvents() {
		i.publisher.Publish(event)
	}
	entry.ClearEvents()

	logging.Info().Str("entry_id", entry.ID()).Int("new_images", len(urls)).Msg("catalog entry updated")
	return entry.Snapshot(), nil
}

// uploadAll pushes every image to the media host concurrently, preserving
// request order in the returned URLs. The first failure cancels the rest.
func uploadAll(ctx context.Context, media contracts.MediaHost, images []contracts.ImageUpload) ([]string, error) {
	urls := make([]string, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for idx, img := range images {
		g.Go(func() error {
			url, err := media.Upload(gctx, img.Filename, img.Data)
			if err != nil {
				return &domain.UploadError{Index: idx, Err: err}
			}
			urls[idx] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

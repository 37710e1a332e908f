package create_entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/logging"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// Request contains the data needed to create a catalog entry.
type Request struct {
	Name        string
	Description string
	Price       *domain.Money
	Category    string
	Store       string
	Link        string
	Images      []contracts.ImageUpload
}

// Interactor handles the create entry use case.
type Interactor struct {
	repo      contracts.EntryRepository
	media     contracts.MediaHost
	publisher contracts.EventPublisher
	clock     clock.Clock
}

// NewInteractor creates a new create entry interactor.
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

// Execute creates a new entry. Field validation runs before any upload so a
// bad request never leaves orphaned images on the media host. Uploads run in
// parallel and are all-or-nothing: any failure aborts the whole create.
// Events are published only after the entry is committed.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.EntrySnapshot, error) {
	if err := domain.ValidateEntryInput(req.Name, req.Price, req.Category, req.Store, req.Link); err != nil {
		return nil, err
	}
	if len(req.Images) == 0 {
		return nil, domain.NewValidationError(domain.FieldImages, "at least one image is required")
	}

	urls, err := uploadAll(ctx, i.media, req.Images)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewEntry(
		uuid.New().String(),
		req.Name,
		req.Description,
		req.Price,
		urls,
		req.Category,
		req.Store,
		req.Link,
		i.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := i.repo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist entry: %w", err)
	}

	for _, event := range entry.DomainEvents() {
		i.publisher.Publish(event)
	}
	entry.ClearEvents()

	logging.Info().Str("entry_id", entry.ID()).Str("category", entry.Category()).Msg("catalog entry created")
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

package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_entry"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_entries"
	"github.com/light-bringer/catalog-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_entry"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_entry"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_entry"
	"github.com/light-bringer/catalog-service/internal/auth"
	"github.com/light-bringer/catalog-service/internal/cache"
	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/media"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/internal/realtime"
)

// ServiceOptions holds all wired application dependencies.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Hub           *realtime.Hub
	Verifier      *auth.Verifier

	CreateEntry *create_entry.Interactor
	UpdateEntry *update_entry.Interactor
	DeleteEntry *delete_entry.Interactor
	GetEntry    *get_entry.Query
	ListEntries *list_entries.Query
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	entryRepo := repo.NewEntryRepo(spannerClient, comm, clk)
	readModel := repo.NewReadModel(spannerClient)

	resultCache := cache.New(cfg.Cache.TTL, clk)
	hub := realtime.NewHub()
	publisher := NewFanoutPublisher(resultCache, hub)

	mediaHost := media.NewHost(cfg.Media.BaseURL, cfg.Media.APIKey, cfg.Media.Timeout)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Hub:           hub,
		Verifier:      auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),

		CreateEntry: create_entry.NewInteractor(entryRepo, mediaHost, publisher, clk),
		UpdateEntry: update_entry.NewInteractor(entryRepo, mediaHost, publisher, clk),
		DeleteEntry: delete_entry.NewInteractor(entryRepo, mediaHost, publisher),
		GetEntry:    get_entry.NewQuery(readModel),
		ListEntries: list_entries.NewQuery(readModel, resultCache),
	}, nil
}

// Close releases held resources.
func (s *ServiceOptions) Close() {
	if s.Hub != nil {
		s.Hub.CloseAll()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}

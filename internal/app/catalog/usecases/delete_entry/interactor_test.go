package delete_entry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

type fakeRepo struct {
	entry     *domain.Entry
	deleteErr error
	deleted   []string
}

func (r *fakeRepo) Insert(context.Context, *domain.Entry) error { return nil }
func (r *fakeRepo) Update(context.Context, *domain.Entry) error { return nil }

func (r *fakeRepo) GetByID(_ context.Context, entryID string) (*domain.Entry, error) {
	if r.entry == nil || r.entry.ID() != entryID {
		return nil, domain.ErrEntryNotFound
	}
	return r.entry, nil
}

func (r *fakeRepo) Delete(_ context.Context, entryID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, entryID)
	return nil
}

type fakeMedia struct {
	deleteErr error
	deleted   []string
}

func (m *fakeMedia) Upload(context.Context, string, []byte) (string, error) {
	return "", errors.New("not used")
}

func (m *fakeMedia) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return m.deleteErr
}

type fakePublisher struct {
	events []domain.Event
}

func (p *fakePublisher) Publish(event domain.Event) {
	p.events = append(p.events, event)
}

func storedEntry(t *testing.T) *domain.Entry {
	t.Helper()
	price, err := domain.ParseMoney("99.90")
	require.NoError(t, err)
	created := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	return domain.ReconstructEntry(
		"entry-1", "Fone Bluetooth", "Desc",
		price,
		[]string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
		"eletronicos", "amazon", "https://amazon.example.com/fone",
		created, created,
	)
}

func newFixture(t *testing.T) (*Interactor, *fakeRepo, *fakeMedia, *fakePublisher) {
	repo := &fakeRepo{entry: storedEntry(t)}
	media := &fakeMedia{}
	publisher := &fakePublisher{}
	return NewInteractor(repo, media, publisher), repo, media, publisher
}

func TestDeleteEntry(t *testing.T) {
	t.Run("deletes row, cleans up images and publishes deleted event", func(t *testing.T) {
		interactor, repo, media, publisher := newFixture(t)

		err := interactor.Execute(context.Background(), &Request{ID: "entry-1"})
		require.NoError(t, err)

		assert.Equal(t, []string{"entry-1"}, repo.deleted)
		assert.Equal(t, []string{
			"https://img.example.com/a.jpg",
			"https://img.example.com/b.jpg",
		}, media.deleted)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, domain.EventTypeDeleted, publisher.events[0].EventType())
		assert.Equal(t, "entry-1", publisher.events[0].EntryID())
	})

	t.Run("media cleanup failure does not fail the delete", func(t *testing.T) {
		interactor, repo, media, publisher := newFixture(t)
		media.deleteErr = errors.New("host unreachable")

		err := interactor.Execute(context.Background(), &Request{ID: "entry-1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"entry-1"}, repo.deleted)
		assert.Len(t, publisher.events, 1)
	})

	t.Run("unknown entry id", func(t *testing.T) {
		interactor, repo, media, publisher := newFixture(t)

		err := interactor.Execute(context.Background(), &Request{ID: "entry-missing"})
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
		assert.Empty(t, repo.deleted)
		assert.Empty(t, media.deleted)
		assert.Empty(t, publisher.events)
	})

	t.Run("row delete failure skips cleanup and publish", func(t *testing.T) {
		interactor, _, media, publisher := newFixture(t)
		repo := &fakeRepo{entry: storedEntry(t), deleteErr: &domain.StorageError{Op: "commit", Err: errors.New("aborted")}}
		interactor = NewInteractor(repo, media, publisher)

		err := interactor.Execute(context.Background(), &Request{ID: "entry-1"})
		require.Error(t, err)
		assert.Empty(t, media.deleted)
		assert.Empty(t, publisher.events)
	})
}

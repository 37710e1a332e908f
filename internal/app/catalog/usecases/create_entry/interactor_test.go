package create_entry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
)

// opLog records the order of side effects across fakes.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	l.ops = append(l.ops, op)
	l.mu.Unlock()
}

type fakeRepo struct {
	log       *opLog
	insertErr error
	inserted  *domain.Entry
}

func (r *fakeRepo) Insert(_ context.Context, entry *domain.Entry) error {
	r.log.add("insert")
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = entry
	return nil
}

func (r *fakeRepo) Update(context.Context, *domain.Entry) error { return nil }
func (r *fakeRepo) Delete(context.Context, string) error        { return nil }
func (r *fakeRepo) GetByID(context.Context, string) (*domain.Entry, error) {
	return nil, domain.ErrEntryNotFound
}

type fakeMedia struct {
	log      *opLog
	mu       sync.Mutex
	uploaded []string
	failOn   string // filename that fails; empty means all succeed
}

func (m *fakeMedia) Upload(_ context.Context, filename string, _ []byte) (string, error) {
	m.mu.Lock()
	m.uploaded = append(m.uploaded, filename)
	m.mu.Unlock()
	if filename == m.failOn {
		return "", errors.New("host rejected file")
	}
	return "https://img.example.com/" + filename, nil
}

func (m *fakeMedia) Delete(context.Context, string) error { return nil }

func (m *fakeMedia) uploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploaded)
}

type fakePublisher struct {
	log    *opLog
	events []domain.Event
}

func (p *fakePublisher) Publish(event domain.Event) {
	p.log.add("publish")
	p.events = append(p.events, event)
}

func validRequest() *Request {
	price, _ := domain.ParseMoney("199.90")
	return &Request{
		Name:        "Fone Bluetooth",
		Description: "Cancelamento de ruido",
		Price:       price,
		Category:    "eletronicos",
		Store:       "amazon",
		Link:        "https://amazon.example.com/fone",
		Images: []contracts.ImageUpload{
			{Filename: "front.jpg", Data: []byte("a")},
			{Filename: "side.jpg", Data: []byte("b")},
		},
	}
}

func newFixture() (*Interactor, *fakeRepo, *fakeMedia, *fakePublisher) {
	log := &opLog{}
	repo := &fakeRepo{log: log}
	media := &fakeMedia{log: log}
	publisher := &fakePublisher{log: log}
	clk := clock.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	return NewInteractor(repo, media, publisher, clk), repo, media, publisher
}

func TestCreateEntry(t *testing.T) {
	t.Run("creates entry with uploaded image urls in request order", func(t *testing.T) {
		interactor, repo, _, publisher := newFixture()

		snap, err := interactor.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, snap.ID)
		assert.Equal(t, "Fone Bluetooth", snap.Name)
		assert.Equal(t, []string{
			"https://img.example.com/front.jpg",
			"https://img.example.com/side.jpg",
		}, snap.Images)
		require.NotNil(t, repo.inserted)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, domain.EventTypeCreated, publisher.events[0].EventType())
		assert.Equal(t, snap.ID, publisher.events[0].EntryID())
	})

	t.Run("publishes only after the insert succeeded", func(t *testing.T) {
		interactor, repo, _, _ := newFixture()

		_, err := interactor.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		require.Equal(t, []string{"insert", "publish"}, repo.log.ops)
	})

	t.Run("preserves upload order under many parallel uploads", func(t *testing.T) {
		interactor, _, _, _ := newFixture()

		req := validRequest()
		req.Images = nil
		for n := 0; n < 20; n++ {
			req.Images = append(req.Images, contracts.ImageUpload{
				Filename: fmt.Sprintf("img-%02d.jpg", n),
				Data:     []byte{byte(n)},
			})
		}

		snap, err := interactor.Execute(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, snap.Images, 20)
		for n, url := range snap.Images {
			assert.Equal(t, fmt.Sprintf("https://img.example.com/img-%02d.jpg", n), url)
		}
	})

	t.Run("validation runs before any upload", func(t *testing.T) {
		interactor, repo, media, publisher := newFixture()

		req := validRequest()
		req.Category = "brinquedos"

		_, err := interactor.Execute(context.Background(), req)
		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, domain.FieldCategory, valErr.Field)

		assert.Zero(t, media.uploadCount())
		assert.Nil(t, repo.inserted)
		assert.Empty(t, publisher.events)
	})

	t.Run("rejects create without images before uploading", func(t *testing.T) {
		interactor, _, media, _ := newFixture()

		req := validRequest()
		req.Images = nil

		_, err := interactor.Execute(context.Background(), req)
		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, domain.FieldImages, valErr.Field)
		assert.Zero(t, media.uploadCount())
	})

	t.Run("one failed upload aborts the whole create", func(t *testing.T) {
		interactor, repo, media, publisher := newFixture()
		media.failOn = "side.jpg"

		_, err := interactor.Execute(context.Background(), validRequest())
		var upErr *domain.UploadError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, 1, upErr.Index)

		assert.Nil(t, repo.inserted)
		assert.Empty(t, publisher.events)
	})

	t.Run("repo failure publishes nothing", func(t *testing.T) {
		interactor, repo, _, publisher := newFixture()
		repo.insertErr = &domain.StorageError{Op: "commit", Err: errors.New("deadline exceeded")}

		_, err := interactor.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})
}

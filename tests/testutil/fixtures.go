package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/models/m_entry"
)

// EntryFixture describes a test catalog entry. Zero fields get sensible
// defaults from CreateTestEntry.
type EntryFixture struct {
	Name      string
	Category  string
	Store     string
	CreatedAt time.Time
}

// CreateTestEntry inserts a catalog entry directly, bypassing the domain
// layer, and returns its id.
func CreateTestEntry(t *testing.T, client *spanner.Client, fixture EntryFixture) string {
	t.Helper()

	if fixture.Name == "" {
		fixture.Name = "Fone Bluetooth"
	}
	if fixture.Category == "" {
		fixture.Category = "eletronicos"
	}
	if fixture.Store == "" {
		fixture.Store = "amazon"
	}
	if fixture.CreatedAt.IsZero() {
		fixture.CreatedAt = time.Now().UTC()
	}

	entryID := uuid.New().String()
	model := m_entry.NewModel()
	data := &m_entry.Data{
		EntryID:          entryID,
		Name:             fixture.Name,
		Description:      "Test entry description",
		PriceNumerator:   1999,
		PriceDenominator: 10,
		Images:           []string{"https://img.example.com/test.jpg"},
		Category:         fixture.Category,
		Store:            fixture.Store,
		Link:             "https://example.com/product",
		CreatedAt:        fixture.CreatedAt,
		UpdatedAt:        fixture.CreatedAt,
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to create test entry")
	return entryID
}

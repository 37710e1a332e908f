package m_entry

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations for the catalog_entries table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation inserting a catalog entry.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.EntryID,
			data.Name,
			data.Description,
			data.PriceNumerator,
			data.PriceDenominator,
			data.Images,
			data.Category,
			data.Store,
			data.Link,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a Spanner mutation updating specific columns. The
// updates map holds column names and new values; UpdatedAt is always set.
func (m *Model) UpdateMut(entryID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, EntryID)
	values = append(values, entryID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation removing a catalog entry.
func (m *Model) DeleteMut(entryID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{entryID})
}

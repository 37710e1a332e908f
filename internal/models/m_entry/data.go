package m_entry

import "time"

// Data is the database row model for the catalog_entries table.
type Data struct {
	EntryID          string    `spanner:"entry_id"`
	Name             string    `spanner:"name"`
	Description      string    `spanner:"description"`
	PriceNumerator   int64     `spanner:"price_numerator"`
	PriceDenominator int64     `spanner:"price_denominator"`
	Images           []string  `spanner:"images"`
	Category         string    `spanner:"category"`
	Store            string    `spanner:"store"`
	Link             string    `spanner:"link"`
	CreatedAt        time.Time `spanner:"created_at"`
	UpdatedAt        time.Time `spanner:"updated_at"`
}

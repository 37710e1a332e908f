package m_entry

// Field name constants for the catalog_entries table. Using constants keeps
// column references type-safe across model, repo and read model.
const (
	TableName = "catalog_entries"

	EntryID          = "entry_id"
	Name             = "name"
	Description      = "description"
	PriceNumerator   = "price_numerator"
	PriceDenominator = "price_denominator"
	Images           = "images"
	Category         = "category"
	Store            = "store"
	Link             = "link"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)

// Columns lists every column, in DDL order, for full-row reads.
var Columns = []string{
	EntryID,
	Name,
	Description,
	PriceNumerator,
	PriceDenominator,
	Images,
	Category,
	Store,
	Link,
	CreatedAt,
	UpdatedAt,
}

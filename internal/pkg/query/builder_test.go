package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("select all columns", func(t *testing.T) {
		stmt := From("catalog_entries").Build()
		assert.Equal(t, "SELECT * FROM catalog_entries", stmt.SQL)
		assert.Empty(t, stmt.Params)
	})

	t.Run("select specific columns", func(t *testing.T) {
		stmt := From("catalog_entries").Select("entry_id", "name").Build()
		assert.Equal(t, "SELECT entry_id, name FROM catalog_entries", stmt.SQL)
	})

	t.Run("where conditions combined with AND", func(t *testing.T) {
		stmt := From("catalog_entries").
			Where(Eq("category", "eletronicos")).
			Where(Eq("store", "amazon")).
			Build()
		assert.Equal(t, "SELECT * FROM catalog_entries WHERE category = @p0 AND store = @p1", stmt.SQL)
		assert.Equal(t, "eletronicos", stmt.Params["p0"])
		assert.Equal(t, "amazon", stmt.Params["p1"])
	})

	t.Run("contains generates case-insensitive like", func(t *testing.T) {
		stmt := From("catalog_entries").Where(Contains("name", "Fone")).Build()
		assert.Equal(t, "SELECT * FROM catalog_entries WHERE LOWER(name) LIKE @p0", stmt.SQL)
		assert.Equal(t, "%fone%", stmt.Params["p0"])
	})

	t.Run("contains escapes like metacharacters", func(t *testing.T) {
		stmt := From("catalog_entries").Where(Contains("name", "100%_off")).Build()
		assert.Equal(t, `%100\%\_off%`, stmt.Params["p0"])
	})

	t.Run("order limit offset", func(t *testing.T) {
		stmt := From("catalog_entries").
			OrderBy("created_at", Desc).
			Limit(12).
			Offset(24).
			Build()
		assert.Equal(t, "SELECT * FROM catalog_entries ORDER BY created_at DESC LIMIT @limit OFFSET @offset", stmt.SQL)
		assert.Equal(t, int64(12), stmt.Params["limit"])
		assert.Equal(t, int64(24), stmt.Params["offset"])
	})

	t.Run("count keeps filters and drops pagination", func(t *testing.T) {
		base := From("catalog_entries").
			Where(Eq("category", "casa")).
			OrderBy("created_at", Desc).
			Limit(12).
			Offset(12)

		stmt := base.Count().Build()
		assert.Equal(t, "SELECT COUNT(*) FROM catalog_entries WHERE category = @p0", stmt.SQL)
		assert.Equal(t, "casa", stmt.Params["p0"])

		// Original builder is unchanged.
		orig := base.Build()
		require.Contains(t, orig.SQL, "LIMIT @limit")
	})

	t.Run("is null", func(t *testing.T) {
		stmt := From("catalog_entries").Where(IsNull("updated_at")).Build()
		assert.Equal(t, "SELECT * FROM catalog_entries WHERE updated_at IS NULL", stmt.SQL)
	})
}

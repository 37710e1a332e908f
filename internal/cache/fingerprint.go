package cache

import (
	"fmt"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
)

// Fingerprint derives the cache key for a listing query. The filter is
// normalized first, so the same logical query always produces the same key;
// an unselected category or store appears as the neutral "todas" value:
//
//	Fingerprint(category=Eletronicos, store="", search="", page=1, size=12)
//	  -> "eletronicos-todas--1-12"
func Fingerprint(filter *contracts.ListFilter) string {
	filter.Normalize()

	category := filter.Category
	if category == "" {
		category = contracts.AllFilterValue
	}
	store := filter.Store
	if store == "" {
		store = contracts.AllFilterValue
	}

	return fmt.Sprintf("%s-%s-%s-%d-%d", category, store, filter.Search, filter.Page, filter.PageSize)
}

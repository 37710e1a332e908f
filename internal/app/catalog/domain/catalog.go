package domain

// Categories and stores form closed vocabularies; the listing UI renders a
// fixed sidebar for each, so unknown values are rejected at the gateway.

var allowedCategories = map[string]bool{
	"eletronicos": true,
	"casa":        true,
	"moda":        true,
	"beleza":      true,
	"esportes":    true,
	"infantil":    true,
	"informatica": true,
	"utilidades":  true,
}

var allowedStores = map[string]bool{
	"amazon":       true,
	"shopee":       true,
	"mercadolivre": true,
	"aliexpress":   true,
	"magalu":       true,
	"shein":        true,
}

// ValidCategory reports whether category belongs to the fixed set.
func ValidCategory(category string) bool {
	return allowedCategories[category]
}

// ValidStore reports whether store belongs to the fixed set.
func ValidStore(store string) bool {
	return allowedStores[store]
}

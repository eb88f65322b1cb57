package domain

import (
	"sort"
	"strings"
)

// brandAliases maps lower-cased mentions to canonical brand names.
var brandAliases = map[string]string{
	"mercedes":      "Mercedes-Benz",
	"mercedes-benz": "Mercedes-Benz",
	"merc":          "Mercedes-Benz",
	"mb":            "Mercedes-Benz",
	"benz":          "Mercedes-Benz",
	"actros":        "Mercedes-Benz",
	"man":           "MAN",
	"tgx":           "MAN",
	"scania":        "Scania",
	"volvo":         "Volvo",
	"daf":           "DAF",
	"iveco":         "Iveco",
	"renault":       "Renault Trucks",
	"renault trucks": "Renault Trucks",
	"ford":          "Ford Trucks",
	"ford trucks":   "Ford Trucks",
	"kamaz":         "KAMAZ",
	"isuzu":         "Isuzu",
	"mitsubishi":    "Mitsubishi Fuso",
	"fuso":          "Mitsubishi Fuso",
	"hino":          "Hino",
	"tatra":         "Tatra",
}

// Brands is the canonical brand list in declaration order.
var Brands = []string{
	"Mercedes-Benz", "MAN", "Scania", "Volvo", "DAF", "Iveco",
	"Renault Trucks", "Ford Trucks", "KAMAZ", "Isuzu",
	"Mitsubishi Fuso", "Hino", "Tatra",
}

// premiumBrands carry a resale premium in the pricing explainer.
var premiumBrands = map[string]bool{
	"Mercedes-Benz": true,
	"Scania":        true,
	"Volvo":         true,
	"MAN":           true,
}

// CanonicalBrand resolves a free-text mention to a canonical brand name.
// Returns "" when the mention is not a known brand or alias.
func CanonicalBrand(mention string) string {
	return brandAliases[strings.ToLower(strings.TrimSpace(mention))]
}

// IsPremiumBrand reports whether the canonical brand carries a resale premium.
func IsPremiumBrand(brand string) bool {
	return premiumBrands[brand]
}

// BrandAliases returns all known aliases, lower-cased and sorted. The slice
// is a copy; sorting keeps callers deterministic across runs.
func BrandAliases() []string {
	out := make([]string, 0, len(brandAliases))
	for a := range brandAliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

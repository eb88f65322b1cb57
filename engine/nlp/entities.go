package nlp

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// Entities holds ordered extracted values per entity kind. Numeric kinds
// keep duplicate matches so consumers can take min/max; brands are
// canonicalized and deduplicated since several aliases map to one name.
type Entities struct {
	Brands        []string              `json:"brands,omitempty"`
	Years         []int                 `json:"years,omitempty"`
	Prices        []float64             `json:"prices,omitempty"`
	MileagesKM    []int                 `json:"mileages_km,omitempty"`
	FuelTypes     []domain.FuelType     `json:"fuel_types,omitempty"`
	Transmissions []domain.Transmission `json:"transmissions,omitempty"`
	Conditions    []domain.Condition    `json:"conditions,omitempty"`
	Locations     []string              `json:"locations,omitempty"`
}

var (
	yearRe    = regexp.MustCompile(`\b(20\d{2})\b`)
	priceRe   = regexp.MustCompile(`(?i)(\d[\d,.]*)\s*(k\b|thousand|€|euros?\b|eur\b)`)
	mileageRe = regexp.MustCompile(`(?i)(\d[\d,]*)\s*(km\b|kilometers?\b|kilometres?\b|miles?\b)`)
)

var fuelVocab = map[string]domain.FuelType{
	"diesel": domain.FuelDiesel, "electric": domain.FuelElectric,
	"lng": domain.FuelLNG, "cng": domain.FuelCNG, "hybrid": domain.FuelHybrid,
}

var transmissionVocab = map[string]domain.Transmission{
	"automatic": domain.TransmissionAutomatic,
	"manual":    domain.TransmissionManual,
	"semi-automatic": domain.TransmissionSemiAuto,
	"semi automatic": domain.TransmissionSemiAuto,
}

var conditionVocab = map[string]domain.Condition{
	"brand new": domain.ConditionNew,
	"new":       domain.ConditionNew,
	"used":      domain.ConditionUsed,
	"second hand": domain.ConditionUsed,
	"certified": domain.ConditionCertified,
}

var locationVocab = []string{
	"Germany", "Netherlands", "Poland", "France", "Spain", "Italy", "Turkey",
	"Berlin", "Hamburg", "Munich", "Rotterdam", "Amsterdam", "Warsaw",
	"Istanbul", "Ankara", "Izmir", "Bursa", "Madrid", "Milan", "Lyon",
}

// extractEntities runs every extractor. Extractors are independent and
// side-effect-free, so their order does not matter.
func extractEntities(text string) Entities {
	lower := strings.ToLower(text)
	return Entities{
		Brands:        extractBrands(lower),
		Years:         extractYears(text),
		Prices:        extractPrices(text),
		MileagesKM:    extractMileages(text),
		FuelTypes:     extractVocab(lower, fuelVocab),
		Transmissions: extractVocab(lower, transmissionVocab),
		Conditions:    extractConditions(lower),
		Locations:     extractLocations(lower),
	}
}

// extractBrands finds brand mentions via the alias gazetteer, ordered by
// first appearance in the text. Several aliases map to one canonical brand,
// so each brand keeps the earliest position any of its aliases matched at.
func extractBrands(lower string) []string {
	first := map[string]int{}
	for _, alias := range domain.BrandAliases() {
		idx := indexWord(lower, alias)
		if idx < 0 {
			continue
		}
		canonical := domain.CanonicalBrand(alias)
		if canonical == "" {
			continue
		}
		if pos, ok := first[canonical]; !ok || idx < pos {
			first[canonical] = idx
		}
	}

	out := make([]string, 0, len(first))
	for brand := range first {
		out = append(out, brand)
	}
	sort.Slice(out, func(i, j int) bool {
		if first[out[i]] != first[out[j]] {
			return first[out[i]] < first[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// indexWord finds needle in haystack at word boundaries, -1 if absent.
func indexWord(haystack, needle string) int {
	for from := 0; from < len(haystack); {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(needle)
		beforeOK := idx == 0 || !isAlnum(haystack[idx-1])
		afterOK := end == len(haystack) || !isAlnum(haystack[end])
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func extractYears(text string) []int {
	var out []int
	for _, m := range yearRe.FindAllStringSubmatch(text, -1) {
		y, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, y)
	}
	return out
}

// dotGroupedRe matches European thousands grouping ("95.000", "1.250.000")
// as opposed to a decimal fraction ("1.5").
var dotGroupedRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

func extractPrices(text string) []float64 {
	var out []float64
	for _, m := range priceRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		if dotGroupedRe.MatchString(raw) {
			raw = strings.ReplaceAll(raw, ".", "")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(strings.TrimSpace(m[2]))
		if unit == "k" || unit == "thousand" {
			v *= 1000
		}
		out = append(out, v)
	}
	return out
}

func extractMileages(text string) []int {
	var out []int
	for _, m := range mileageRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		unit := strings.ToLower(m[2])
		if strings.HasPrefix(unit, "mile") {
			v = int(math.Round(float64(v) * 1.60934))
		}
		out = append(out, v)
	}
	return out
}

// extractVocab returns vocabulary hits in text order. Duplicate mentions of
// the same term are preserved only once per distinct term occurrence index.
func extractVocab[T ~string](lower string, vocab map[string]T) []T {
	type hit struct {
		pos int
		val T
	}
	var hits []hit
	for term, val := range vocab {
		if idx := indexWord(lower, term); idx >= 0 {
			hits = append(hits, hit{pos: idx, val: val})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]T, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.val)
	}
	return out
}

// extractConditions prefers multi-word phrases over their substrings, so
// "brand new" does not double-report "new".
func extractConditions(lower string) []domain.Condition {
	conds := extractVocab(lower, conditionVocab)
	// "brand new" and "new" both hit at overlapping positions; collapse
	// consecutive duplicates.
	out := conds[:0]
	var prev domain.Condition
	for _, c := range conds {
		if c == prev && len(out) > 0 {
			continue
		}
		out = append(out, c)
		prev = c
	}
	return out
}

func extractLocations(lower string) []string {
	type hit struct {
		pos int
		val string
	}
	var hits []hit
	for _, loc := range locationVocab {
		if idx := indexWord(lower, strings.ToLower(loc)); idx >= 0 {
			hits = append(hits, hit{pos: idx, val: loc})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.val
	}
	return out
}

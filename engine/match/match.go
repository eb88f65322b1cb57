// Package match ranks candidate listings against a reference vehicle or a
// user preference set. Scoring is a fixed-point-budget scheme with no
// randomness: identical inputs always produce identical ordering.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// Candidate is a listing with its computed 0-100 score and a short
// human-readable reason (at most three clauses).
type Candidate struct {
	Vehicle domain.VehicleFeatures `json:"vehicle"`
	Score   int                    `json:"score"`
	Reason  string                 `json:"reason"`
}

// Point budget for reference-vehicle similarity. The terms sum to 100.
const (
	brandPoints        = 20
	categoryPoints     = 15
	yearPoints         = 15
	powerPoints        = 15
	pricePoints        = 15
	transmissionPoints = 10
	axlePoints         = 10
)

// RankBySimilarity scores candidates against a reference vehicle and
// returns them in descending score order. Ties keep input order. The caller
// applies its own top-N slicing.
func RankBySimilarity(ref domain.VehicleFeatures, candidates []domain.VehicleFeatures) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		score, reason := similarity(ref, c)
		out[i] = Candidate{Vehicle: c, Score: score, Reason: reason}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// similarity computes the fixed-budget pairwise score. Every proximity term
// floors at zero; a large difference never subtracts from other terms.
func similarity(ref, c domain.VehicleFeatures) (int, string) {
	total := 0.0

	brandMatch := ref.Brand != "" && ref.Brand == c.Brand
	if brandMatch {
		total += brandPoints
	}
	if ref.Category != "" && ref.Category == c.Category {
		total += categoryPoints
	}

	dYear := abs(ref.Year - c.Year)
	total += math.Max(0, yearPoints-3*float64(dYear))

	if ref.PowerHP > 0 && c.PowerHP > 0 {
		total += math.Max(0, powerPoints-float64(abs(ref.PowerHP-c.PowerHP))/20)
	}

	priceClose := false
	if ref.Price > 0 && c.Price > 0 {
		dPrice := math.Abs(ref.Price - c.Price)
		term := math.Max(0, pricePoints-30*dPrice/ref.Price)
		total += term
		priceClose = term > pricePoints/2
	}

	transMatch := ref.Transmission != "" && ref.Transmission == c.Transmission
	if transMatch {
		total += transmissionPoints
	}
	if ref.AxleConfig != "" && ref.AxleConfig == c.AxleConfig {
		total += axlePoints
	}

	score := int(math.Round(total))
	if score > 100 {
		score = 100
	}

	return score, buildReason(ref, c, brandMatch, dYear, transMatch, priceClose)
}

// buildReason concatenates up to three clauses in fixed priority order:
// brand, age, transmission, price, power.
func buildReason(ref, c domain.VehicleFeatures, brandMatch bool, dYear int, transMatch, priceClose bool) string {
	var clauses []string
	add := func(s string) {
		if len(clauses) < 3 {
			clauses = append(clauses, s)
		}
	}

	if brandMatch {
		add("same brand")
	}
	switch {
	case dYear <= 1:
		add("same model year")
	case dYear <= 3:
		add("similar age")
	case c.Year > ref.Year:
		add("newer model year")
	default:
		add("older model year")
	}
	if transMatch {
		add("same transmission")
	}
	if priceClose {
		add("similar price")
	}
	if ref.PowerHP > 0 && c.PowerHP > 0 && abs(ref.PowerHP-c.PowerHP) <= 50 {
		add("comparable power")
	}

	if len(clauses) == 0 {
		return "general match"
	}
	return strings.Join(clauses, ", ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package convo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
	"github.com/TruckScoutAI/truckscout-engine/engine/listing"
	"github.com/TruckScoutAI/truckscout-engine/engine/market"
	"github.com/TruckScoutAI/truckscout-engine/engine/match"
	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
	"github.com/TruckScoutAI/truckscout-engine/engine/pricing"
	"github.com/TruckScoutAI/truckscout-engine/pkg/fn"
)

func (d *Dispatcher) handleSearch(ctx context.Context, r nlp.NLPResult) *Reply {
	f := filterFromEntities(r.Entities)
	f.Limit = d.opts.TopN

	vehicles, err := d.deps.Listings.Find(ctx, f)
	if err != nil {
		d.logger.Error("listing search failed", "error", err)
		return &Reply{Message: "I'm having trouble searching listings right now. Please try again in a moment."}
	}
	if len(vehicles) == 0 {
		return &Reply{
			Message: "I couldn't find any listings matching that. Try widening the price or year range.",
			Data:    map[string]any{"listings": vehicles},
		}
	}
	return &Reply{
		Message: fmt.Sprintf("I found %d %s matching your search. The top result is a %d %s %s at %s.",
			len(vehicles), plural(len(vehicles), "listing"),
			vehicles[0].Year, vehicles[0].Brand, vehicles[0].Model, euros(vehicles[0].Price)),
		Data: map[string]any{"listings": vehicles, "filter": f},
	}
}

func (d *Dispatcher) handlePrice(ctx context.Context, sess *Session, r nlp.NLPResult) *Reply {
	if d.deps.Pricer == nil {
		return &Reply{Message: "Price estimation isn't available right now."}
	}
	v := vehicleFromEntities(r.Entities, sess.Prefs)
	if v.Brand == "" || v.Year == 0 {
		return &Reply{Message: "To estimate a price I need at least the brand and the year. For example: \"What is a 2020 Scania R450 with 400,000 km worth?\""}
	}

	pred, err := d.deps.Pricer.Predict(ctx, v, nil)
	switch {
	case errors.Is(err, pricing.ErrNoEstimate):
		return &Reply{Message: fmt.Sprintf("I couldn't produce a reliable estimate for that %s. It may be outside the range my models cover.", v.Brand)}
	case err != nil:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return &Reply{Message: fmt.Sprintf("I can't price that yet: the %s looks wrong. Could you restate it?", verr.Field)}
		}
		d.logger.Error("price prediction failed", "error", err, "brand", v.Brand)
		return &Reply{Message: "Something went wrong while estimating the price. Please try again."}
	}

	msg := fmt.Sprintf("A %d %s with %s km is worth around %s (range %s to %s, confidence %.0f%%).",
		v.Year, v.Brand, thousands(v.MileageKM),
		euros(pred.PredictedPrice), euros(pred.PriceRange.Min), euros(pred.PriceRange.Max),
		pred.Confidence*100)
	return &Reply{
		Message: msg,
		Data:    map[string]any{"prediction": pred, "vehicle": v},
	}
}

func (d *Dispatcher) handleCompare(ctx context.Context, r nlp.NLPResult) *Reply {
	if len(r.Entities.Brands) < 2 {
		return &Reply{Message: "Tell me which two trucks to compare, for example: \"Compare the Mercedes-Benz Actros with the Scania R-series\"."}
	}
	left, right := r.Entities.Brands[0], r.Entities.Brands[1]

	pick := func(brand string) *domain.VehicleFeatures {
		vs, err := d.deps.Listings.Find(ctx, listing.Filter{Brand: brand, Limit: 1})
		if err != nil || len(vs) == 0 {
			return nil
		}
		return &vs[0]
	}
	lv, rv := pick(left), pick(right)
	if lv == nil || rv == nil {
		missing := left
		if lv != nil {
			missing = right
		}
		return &Reply{Message: fmt.Sprintf("I don't have a %s listing to compare against right now.", missing)}
	}

	comparison := map[string]any{"left": lv, "right": rv}
	msg := fmt.Sprintf("Comparing a %d %s %s (%s, %s km) with a %d %s %s (%s, %s km).",
		lv.Year, lv.Brand, lv.Model, euros(lv.Price), thousands(lv.MileageKM),
		rv.Year, rv.Brand, rv.Model, euros(rv.Price), thousands(rv.MileageKM))

	if d.deps.Pricer != nil {
		verdict := comparePricing(ctx, d.deps.Pricer, lv, rv)
		if verdict != "" {
			msg += " " + verdict
		}
	}
	return &Reply{Message: msg, Data: map[string]any{"comparison": comparison}}
}

// comparePricing adds a value verdict when both sides can be estimated.
func comparePricing(ctx context.Context, pricer Pricer, lv, rv *domain.VehicleFeatures) string {
	lp, lerr := pricer.Predict(ctx, *lv, nil)
	rp, rerr := pricer.Predict(ctx, *rv, nil)
	if lerr != nil || rerr != nil {
		return ""
	}
	ldelta := lv.Price - lp.PredictedPrice
	rdelta := rv.Price - rp.PredictedPrice
	better, delta := lv, ldelta
	if rdelta < ldelta {
		better, delta = rv, rdelta
	}
	if delta < 0 {
		return fmt.Sprintf("The %s %s looks like the better value, listed %s under its estimated worth.",
			better.Brand, better.Model, euros(-delta))
	}
	return "Both are listed at or above their estimated market value."
}

func (d *Dispatcher) handleQuality(ctx context.Context, sess *Session, r nlp.NLPResult) *Reply {
	if d.deps.Quality == nil {
		return &Reply{Message: "Quality assessment isn't available right now."}
	}
	v := vehicleFromEntities(r.Entities, sess.Prefs)
	if v.Brand == "" || v.Year == 0 {
		return &Reply{Message: "To assess quality I need the brand and the year, and ideally the mileage."}
	}

	assessment, err := d.deps.Quality.Assess(ctx, v, nil, nil)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return &Reply{Message: fmt.Sprintf("I can't assess that yet: the %s looks wrong. Could you restate it?", verr.Field)}
		}
		d.logger.Error("quality assessment failed", "error", err, "brand", v.Brand)
		return &Reply{Message: "Something went wrong while assessing quality. Please try again."}
	}

	msg := fmt.Sprintf("That %d %s grades %s overall (score %.2f, risk %s).",
		v.Year, v.Brand, assessment.Grade, assessment.OverallScore, assessment.Risk.Level)
	if len(assessment.Recommendations) > 0 {
		msg += " " + assessment.Recommendations[0]
	}
	return &Reply{Message: msg, Data: map[string]any{"assessment": assessment, "vehicle": v}}
}

func (d *Dispatcher) handleRecommendations(ctx context.Context, sess *Session, r nlp.NLPResult) *Reply {
	prefs := preferencesFrom(r.Entities, sess.Prefs)

	vehicles, err := d.deps.Listings.Find(ctx, listing.Filter{Limit: 100})
	if err != nil {
		d.logger.Error("recommendation lookup failed", "error", err)
		return &Reply{Message: "I'm having trouble reaching listings right now. Please try again in a moment."}
	}
	if len(vehicles) == 0 {
		return &Reply{Message: "There are no listings to recommend from yet."}
	}

	ranked := match.RankByPreferences(prefs, vehicles)
	if len(ranked) > d.opts.TopN {
		ranked = ranked[:d.opts.TopN]
	}
	top := ranked[0]
	return &Reply{
		Message: fmt.Sprintf("Based on what you've told me, my top pick is a %d %s %s at %s (%s).",
			top.Vehicle.Year, top.Vehicle.Brand, top.Vehicle.Model, euros(top.Vehicle.Price), top.Reason),
		Data: map[string]any{"recommendations": ranked, "preferences": prefs},
	}
}

func (d *Dispatcher) handleMarket(ctx context.Context, sess *Session, r nlp.NLPResult) *Reply {
	brand := ""
	if len(r.Entities.Brands) > 0 {
		brand = r.Entities.Brands[0]
	} else if len(sess.Prefs.Brands) > 0 {
		brand = sess.Prefs.Brands[0]
	}
	if brand == "" {
		return &Reply{Message: "Which brand's market would you like insights on?"}
	}

	vehicles, err := d.deps.Listings.Find(ctx, listing.Filter{Brand: brand, Limit: 200})
	if err != nil {
		d.logger.Error("market lookup failed", "error", err, "brand", brand)
		return &Reply{Message: "I'm having trouble reading the market right now. Please try again."}
	}

	insights := map[string]any{"brand": brand, "listing_count": len(vehicles)}
	msg := fmt.Sprintf("There are %d %s %s on the market right now.",
		len(vehicles), brand, plural(len(vehicles), "listing"))
	if len(vehicles) > 0 {
		avg := averagePrice(vehicles)
		insights["average_price"] = avg
		msg = fmt.Sprintf("There are %d %s %s on the market, averaging %s.",
			len(vehicles), brand, plural(len(vehicles), "listing"), euros(avg))
	}

	// graph enrichment is best-effort
	if d.deps.Market != nil {
		if related, err := d.deps.Market.RelatedBrands(ctx, brand); err != nil {
			d.logger.Warn("brand graph unavailable", "error", err)
		} else if len(related) > 0 {
			insights["competitors"] = related
			names := fn.Map(related, func(b market.Brand) string { return b.Name })
			msg += fmt.Sprintf(" Buyers also look at %s.", strings.Join(names, ", "))
		}
		if segments, err := d.deps.Market.SegmentStats(ctx, brand); err == nil && len(segments) > 0 {
			insights["segments"] = segments
		}
	}
	return &Reply{Message: msg, Data: map[string]any{"insights": insights}}
}

func (d *Dispatcher) handleFeatureSearch(ctx context.Context, text string, r nlp.NLPResult) *Reply {
	brand := ""
	if len(r.Entities.Brands) > 0 {
		brand = r.Entities.Brands[0]
	}

	if d.deps.Semantic != nil && d.deps.Embedder != nil && d.deps.Embedder.Enabled() {
		if reply := d.semanticSearch(ctx, text, brand); reply != nil {
			return reply
		}
	}
	return d.keywordFeatureSearch(ctx, text, brand)
}

// semanticSearch returns nil when the vector path fails, letting the
// keyword fallback take over.
func (d *Dispatcher) semanticSearch(ctx context.Context, text, brand string) *Reply {
	embedding, err := d.deps.Embedder.Embed(ctx, text)
	if err != nil {
		d.logger.Warn("query embedding failed, falling back to keywords", "error", err)
		return nil
	}
	results, err := d.deps.Semantic.Search(ctx, embedding, d.opts.TopN, brand)
	if err != nil {
		d.logger.Warn("semantic search failed, falling back to keywords", "error", err)
		return nil
	}
	if len(results) == 0 {
		return &Reply{
			Message: "Nothing in the current listings matches those features closely.",
			Data:    map[string]any{"matches": results},
		}
	}
	return &Reply{
		Message: fmt.Sprintf("I found %d %s with those features. Best match: %s.",
			len(results), plural(len(results), "listing"), clip(results[0].Description, 90)),
		Data: map[string]any{"matches": results, "mode": "semantic"},
	}
}

func (d *Dispatcher) keywordFeatureSearch(ctx context.Context, text, brand string) *Reply {
	vehicles, err := d.deps.Listings.Find(ctx, listing.Filter{Brand: brand})
	if err != nil {
		d.logger.Error("feature search failed", "error", err)
		return &Reply{Message: "I'm having trouble searching listings right now. Please try again in a moment."}
	}

	terms := featureTerms(text)
	type scored struct {
		Vehicle domain.VehicleFeatures `json:"vehicle"`
		Hits    int                    `json:"hits"`
	}
	var matches []scored
	for _, v := range vehicles {
		desc := strings.ToLower(v.Description)
		hits := 0
		for _, t := range terms {
			if strings.Contains(desc, t) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, scored{Vehicle: v, Hits: hits})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Hits > matches[j].Hits })
	if len(matches) > d.opts.TopN {
		matches = matches[:d.opts.TopN]
	}
	if len(matches) == 0 {
		return &Reply{Message: "No listings mention those features. Try describing them differently."}
	}
	top := matches[0].Vehicle
	return &Reply{
		Message: fmt.Sprintf("I found %d %s mentioning those features, led by a %d %s %s.",
			len(matches), plural(len(matches), "listing"), top.Year, top.Brand, top.Model),
		Data: map[string]any{"matches": matches, "mode": "keyword"},
	}
}

func (d *Dispatcher) handleGeneral(sess *Session) *Reply {
	msg := "I can search truck listings, estimate prices, assess quality, compare vehicles, recommend trucks, and report market insights. What would you like to do?"
	if len(sess.Prefs.Brands) > 0 {
		msg = fmt.Sprintf("Welcome back. Last time you were looking at %s trucks. %s", sess.Prefs.Brands[0], msg)
	}
	return &Reply{Message: msg}
}

// filterFromEntities maps extracted entities onto a listing filter. Lists
// collapse conservatively: one year is a minimum, prices bound the maximum.
func filterFromEntities(e nlp.Entities) listing.Filter {
	f := listing.Filter{}
	if len(e.Brands) > 0 {
		f.Brand = e.Brands[0]
	}
	if len(e.Years) > 0 {
		minY, maxY := e.Years[0], e.Years[0]
		for _, y := range e.Years[1:] {
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
		f.YearMin = minY
		if maxY > minY {
			f.YearMax = maxY
		}
	}
	if len(e.Prices) > 0 {
		maxP := e.Prices[0]
		for _, p := range e.Prices[1:] {
			if p > maxP {
				maxP = p
			}
		}
		f.PriceMax = maxP
	}
	if len(e.MileagesKM) > 0 {
		f.MaxMileageKM = e.MileagesKM[0]
	}
	return f
}

// vehicleFromEntities builds a best-effort vehicle for estimation intents,
// falling back to the session's preferred brand. Condition stays empty
// unless the query states one; a fabricated "used" would trip the
// zero-mileage validation on queries that never mention mileage.
func vehicleFromEntities(e nlp.Entities, prefs SessionPrefs) domain.VehicleFeatures {
	v := domain.VehicleFeatures{}
	if len(e.Brands) > 0 {
		v.Brand = e.Brands[0]
	} else if len(prefs.Brands) > 0 {
		v.Brand = prefs.Brands[0]
	}
	if len(e.Years) > 0 {
		v.Year = e.Years[0]
	}
	if len(e.MileagesKM) > 0 {
		v.MileageKM = e.MileagesKM[0]
	}
	if len(e.FuelTypes) > 0 {
		v.FuelType = e.FuelTypes[0]
	}
	if len(e.Transmissions) > 0 {
		v.Transmission = e.Transmissions[0]
	}
	if len(e.Conditions) > 0 {
		v.Condition = e.Conditions[0]
	}
	return v
}

// preferencesFrom merges the current query's entities over the session
// projection; the query wins on conflict.
func preferencesFrom(e nlp.Entities, prefs SessionPrefs) match.Preferences {
	p := match.Preferences{}
	if len(e.Brands) > 0 {
		p.Brand = e.Brands[0]
	} else if len(prefs.Brands) > 0 {
		p.Brand = prefs.Brands[0]
	}
	if len(e.Prices) > 0 {
		maxP := e.Prices[0]
		for _, pr := range e.Prices[1:] {
			if pr > maxP {
				maxP = pr
			}
		}
		p.PriceMax = maxP
	} else if prefs.PriceMax > 0 {
		p.PriceMax = prefs.PriceMax
	}
	if len(e.Years) > 0 {
		p.YearMin = e.Years[0]
	}
	if len(e.MileagesKM) > 0 {
		p.MaxMileageKM = e.MileagesKM[0]
	}
	if len(e.Transmissions) > 0 {
		p.Transmission = e.Transmissions[0]
	}
	if len(e.FuelTypes) > 0 {
		p.FuelType = e.FuelTypes[0]
	}
	return p
}

func averagePrice(vehicles []domain.VehicleFeatures) float64 {
	if len(vehicles) == 0 {
		return 0
	}
	sum := fn.Reduce(vehicles, 0.0, func(acc float64, v domain.VehicleFeatures) float64 {
		return acc + v.Price
	})
	return sum / float64(len(vehicles))
}

// featureTerms tokenizes a feature query, keeping only terms long enough
// to carry meaning against listing descriptions.
func featureTerms(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'")
		if len(f) >= 4 && !featureStopwords[f] {
			terms = append(terms, f)
		}
	}
	return terms
}

var featureStopwords = map[string]bool{
	"with": true, "that": true, "have": true, "has": true, "find": true,
	"show": true, "trucks": true, "truck": true, "looking": true,
	"want": true, "need": true, "which": true, "equipped": true,
}

func euros(v float64) string {
	return "€" + thousands(int(v+0.5))
}

// thousands formats an integer with dot separators, European style.
func thousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

package nlp

import (
	"context"
	"reflect"
	"testing"
)

func TestClassifyKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"price question", "How much is a 2019 Volvo FH worth?", IntentPriceEstimation},
		{"comparison", "Compare the Scania R450 versus the Volvo FH", IntentCompareVehicles},
		{"quality", "Is this truck reliable and in good condition?", IntentQualityAssessment},
		{"recommendation", "Can you recommend a truck for long haul?", IntentGetRecommendations},
		{"market", "How is the market for tractor units, what are the trends?", IntentMarketInsights},
		{"feature", "Show trucks equipped with retarder and air conditioning", IntentFeatureSearch},
		{"search", "Show me DAF listings for sale", IntentSearchVehicles},
		{"gibberish", "hello there", IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, conf := classifyKeywords(tt.text)
			if intent != tt.want {
				t.Fatalf("classifyKeywords(%q) = %s, want %s", tt.text, intent, tt.want)
			}
			if conf <= 0 || conf > 1 {
				t.Fatalf("confidence %v out of range", conf)
			}
		})
	}
}

func TestUnderstandTerseQuery(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	r := a.Understand(context.Background(), "Mercedes Actros Euro 6 with low mileage from 2020", Context{})

	if r.Intent != IntentSearchVehicles {
		t.Fatalf("intent = %s, want %s", r.Intent, IntentSearchVehicles)
	}
	if r.Confidence <= 0 {
		t.Fatalf("confidence = %v, want > 0", r.Confidence)
	}
	if !reflect.DeepEqual(r.Entities.Brands, []string{"Mercedes-Benz"}) {
		t.Fatalf("brands = %v, want [Mercedes-Benz]", r.Entities.Brands)
	}
	if !reflect.DeepEqual(r.Entities.Years, []int{2020}) {
		t.Fatalf("years = %v, want [2020]", r.Entities.Years)
	}
}

func TestUnderstandEmptyInput(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	for _, text := range []string{"", "   ", "\t\n"} {
		r := a.Understand(context.Background(), text, Context{})
		if r.Intent != IntentGeneral {
			t.Fatalf("Understand(%q) intent = %s, want general", text, r.Intent)
		}
		if r.Confidence != 0.5 {
			t.Fatalf("Understand(%q) confidence = %v, want 0.5", text, r.Confidence)
		}
	}
}

func TestUnderstandDeterministic(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	const text = "Compare a used Scania R450 with a Volvo FH under 60k"
	first := a.Understand(context.Background(), text, Context{})
	second := a.Understand(context.Background(), text, Context{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("understanding is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		check  func(t *testing.T, e Entities)
	}{
		{
			"brand aliases canonicalize and dedupe",
			"Looking at a Mercedes Actros or an MB Arocs",
			func(t *testing.T, e Entities) {
				if !reflect.DeepEqual(e.Brands, []string{"Mercedes-Benz"}) {
					t.Fatalf("brands = %v", e.Brands)
				}
			},
		},
		{
			"years with duplicates preserved",
			"built 2019, registered 2019, inspected 2021",
			func(t *testing.T, e Entities) {
				if !reflect.DeepEqual(e.Years, []int{2019, 2019, 2021}) {
					t.Fatalf("years = %v", e.Years)
				}
			},
		},
		{
			"price suffixes scale to euros",
			"budget is 55k, maybe up to 60 thousand euros",
			func(t *testing.T, e Entities) {
				if len(e.Prices) < 2 || e.Prices[0] != 55000 || e.Prices[1] != 60000 {
					t.Fatalf("prices = %v", e.Prices)
				}
			},
		},
		{
			"mileage in km",
			"around 400,000 km on the clock",
			func(t *testing.T, e Entities) {
				if !reflect.DeepEqual(e.MileagesKM, []int{400000}) {
					t.Fatalf("mileages = %v", e.MileagesKM)
				}
			},
		},
		{
			"miles convert to km",
			"only 100,000 miles",
			func(t *testing.T, e Entities) {
				if len(e.MileagesKM) != 1 || e.MileagesKM[0] != 160934 {
					t.Fatalf("mileages = %v, want [160934]", e.MileagesKM)
				}
			},
		},
		{
			"vocab entities",
			"a used automatic diesel from Hamburg",
			func(t *testing.T, e Entities) {
				if len(e.FuelTypes) != 1 || e.FuelTypes[0] != "diesel" {
					t.Fatalf("fuel = %v", e.FuelTypes)
				}
				if len(e.Transmissions) != 1 || e.Transmissions[0] != "automatic" {
					t.Fatalf("transmissions = %v", e.Transmissions)
				}
				if len(e.Conditions) != 1 || e.Conditions[0] != "used" {
					t.Fatalf("conditions = %v", e.Conditions)
				}
				if !reflect.DeepEqual(e.Locations, []string{"Hamburg"}) {
					t.Fatalf("locations = %v", e.Locations)
				}
			},
		},
		{
			"european thousands grouping",
			"asking 95.000 euros, the dealer wants 1.250.000 € for the fleet",
			func(t *testing.T, e Entities) {
				if len(e.Prices) != 2 || e.Prices[0] != 95000 || e.Prices[1] != 1250000 {
					t.Fatalf("prices = %v, want [95000 1250000]", e.Prices)
				}
			},
		},
		{
			"decimal k suffix stays a fraction",
			"a 1.5k deposit",
			func(t *testing.T, e Entities) {
				if len(e.Prices) != 1 || e.Prices[0] != 1500 {
					t.Fatalf("prices = %v, want [1500]", e.Prices)
				}
			},
		},
		{
			"brand new collapses to one condition",
			"a brand new tipper",
			func(t *testing.T, e Entities) {
				if len(e.Conditions) != 1 || e.Conditions[0] != "new" {
					t.Fatalf("conditions = %v", e.Conditions)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, extractEntities(tt.text))
		})
	}
}

func TestExtractBrandsOrderedByFirstMention(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"alias before the other brand", "actros, volvo, mercedes", []string{"Mercedes-Benz", "Volvo"}},
		{"other brand first", "a volvo fh or maybe a benz", []string{"Volvo", "Mercedes-Benz"}},
		{"three brands", "daf against man against scania", []string{"DAF", "MAN", "Scania"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// alias maps iterate in random order; the result must not
			for i := 0; i < 50; i++ {
				if got := extractBrands(tt.text); !reflect.DeepEqual(got, tt.want) {
					t.Fatalf("iteration %d: extractBrands(%q) = %v, want %v", i, tt.text, got, tt.want)
				}
			}
		})
	}
}

func TestIndexWordBoundaries(t *testing.T) {
	if indexWord("manufactured in 2019", "man") >= 0 {
		t.Fatal("matched inside a longer word")
	}
	if indexWord("a man walks", "man") < 0 {
		t.Fatal("missed a standalone word")
	}
	if indexWord("vs.", "vs") != 0 {
		t.Fatal("punctuation should count as a boundary")
	}
}

func TestScoreSentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive", "excellent truck, I love the clean cab", "positive"},
		{"negative", "terrible rusty truck with many problems", "negative"},
		{"neutral", "show me tractor units from 2020", "neutral"},
		{"mixed cancels out", "good engine in this truck but a bad gearbox somewhere", "neutral"},
		{"empty", "", "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scoreSentiment(tt.text)
			if s.Label != tt.want {
				t.Fatalf("scoreSentiment(%q) = %s (%.2f), want %s", tt.text, s.Label, s.Score, tt.want)
			}
		})
	}
}

func TestScoreComplexity(t *testing.T) {
	t.Run("short query is low", func(t *testing.T) {
		c := scoreComplexity("find trucks")
		if c.Level != "low" || c.Score != 0.3 {
			t.Fatalf("got level=%s score=%v", c.Level, c.Score)
		}
	})

	t.Run("loaded query is high", func(t *testing.T) {
		c := scoreComplexity("compare a Scania and a Volvo and tell me which is cheaper but not older than 2018")
		if c.Level != "high" {
			t.Fatalf("level = %s (score %v), want high", c.Level, c.Score)
		}
		if !c.MultiCondition || !c.Comparison || !c.Negation {
			t.Fatalf("flags = %+v", c)
		}
	})

	t.Run("score never exceeds one", func(t *testing.T) {
		c := scoreComplexity("compare and contrast maybe roughly about ten trucks and not the old ones but also without rust and perhaps cheaper than before")
		if c.Score > 1 {
			t.Fatalf("score = %v", c.Score)
		}
	})
}

func TestStem(t *testing.T) {
	tests := []struct{ in, want string }{
		{"searching", "search"},
		{"listings", "list"},
		{"compared", "compar"},
		{"trucks", "truck"},
		{"bus", "bus"}, // stem would be too short
	}
	for _, tt := range tests {
		if got := stem(tt.in); got != tt.want {
			t.Errorf("stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

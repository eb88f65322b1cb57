package convo

import (
	"fmt"

	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
)

// suggestionsFor proposes natural follow-up questions for the classified
// intent, personalized with the first extracted brand when there is one.
func suggestionsFor(r nlp.NLPResult) []string {
	brand := "Scania"
	if len(r.Entities.Brands) > 0 {
		brand = r.Entities.Brands[0]
	}
	switch r.Intent {
	case nlp.IntentSearchVehicles:
		return []string{
			fmt.Sprintf("What is a used %s worth?", brand),
			"Show me only trucks under 400,000 km",
			fmt.Sprintf("How is the market for %s right now?", brand),
		}
	case nlp.IntentPriceEstimation:
		return []string{
			"Is that a fair asking price?",
			fmt.Sprintf("How does the %s hold its value?", brand),
			"Show me similar trucks for sale",
		}
	case nlp.IntentCompareVehicles:
		return []string{
			"Which one is cheaper to maintain?",
			"Estimate the price of each",
			"Recommend something similar",
		}
	case nlp.IntentQualityAssessment:
		return []string{
			"What are the main risks with this truck?",
			"What would it be worth in good condition?",
			"Find me a lower-mileage alternative",
		}
	case nlp.IntentGetRecommendations:
		return []string{
			"Only automatic transmission, please",
			"Keep it under 60,000 euros",
			fmt.Sprintf("How do %s trucks compare to Volvo?", brand),
		}
	case nlp.IntentMarketInsights:
		return []string{
			fmt.Sprintf("Are %s prices rising or falling?", brand),
			"Which segment has the most supply?",
			fmt.Sprintf("Search %s tractor units", brand),
		}
	case nlp.IntentFeatureSearch:
		return []string{
			"Only Euro 6 trucks with a retarder",
			"Add a sleeper cab to the search",
			"What would the best match cost?",
		}
	default:
		return []string{
			"Find me a Mercedes-Benz Actros from 2020",
			"What is a 2019 Volvo FH worth?",
			"Recommend a reliable tipper under 80k",
		}
	}
}

// actionsFor emits the machine-readable counterparts a UI can render.
func actionsFor(r nlp.NLPResult) []Action {
	payload := map[string]any{}
	if len(r.Entities.Brands) > 0 {
		payload["brand"] = r.Entities.Brands[0]
	}
	if len(r.Entities.Years) > 0 {
		payload["year"] = r.Entities.Years[0]
	}
	switch r.Intent {
	case nlp.IntentSearchVehicles, nlp.IntentFeatureSearch:
		return []Action{
			{Type: "refine_search", Label: "Refine search", Payload: payload},
			{Type: "save_search", Label: "Save this search", Payload: payload},
		}
	case nlp.IntentPriceEstimation:
		return []Action{
			{Type: "view_similar", Label: "See similar listings", Payload: payload},
		}
	case nlp.IntentQualityAssessment:
		return []Action{
			{Type: "request_inspection", Label: "Request an inspection", Payload: payload},
		}
	case nlp.IntentGetRecommendations:
		return []Action{
			{Type: "refine_preferences", Label: "Adjust preferences", Payload: payload},
		}
	default:
		return nil
	}
}

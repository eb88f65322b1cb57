package nlp

import "strings"

var (
	connectorWords  = []string{"and", "or", "but", "plus", "also", "as well"}
	comparisonWords = []string{"compare", "versus", "vs", "better", "cheaper", "difference", "than"}
	negationWords   = []string{"not", "no", "without", "don't", "never", "except"}
	hedgingWords    = []string{"maybe", "perhaps", "might", "possibly", "around", "approximately", "roughly", "about"}
)

// scoreComplexity computes the additive complexity score: base 0.3, +0.2
// for long queries, +0.2 for multiple connectors, +0.15 for comparison,
// +0.1 for negation, +0.05 for hedging, clipped to 1.0.
func scoreComplexity(text string) Complexity {
	lower := strings.ToLower(text)
	tokens := strings.Fields(lower)

	c := Complexity{WordCount: len(tokens), Score: 0.3}

	connectors := 0
	for _, w := range connectorWords {
		connectors += countWord(lower, w)
	}
	c.MultiCondition = connectors >= 2
	c.Comparison = containsAnyWord(lower, comparisonWords)
	c.Negation = containsAnyWord(lower, negationWords)
	c.Uncertainty = containsAnyWord(lower, hedgingWords)

	if c.WordCount > 10 {
		c.Score += 0.2
	}
	if c.MultiCondition {
		c.Score += 0.2
	}
	if c.Comparison {
		c.Score += 0.15
	}
	if c.Negation {
		c.Score += 0.1
	}
	if c.Uncertainty {
		c.Score += 0.05
	}
	if c.Score > 1 {
		c.Score = 1
	}

	switch {
	case c.Score < 0.5:
		c.Level = "low"
	case c.Score < 0.8:
		c.Level = "medium"
	default:
		c.Level = "high"
	}
	return c
}

func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if indexWord(text, w) >= 0 {
			return true
		}
	}
	return false
}

func countWord(text string, word string) int {
	count := 0
	from := 0
	for {
		idx := indexWord(text[from:], word)
		if idx < 0 {
			return count
		}
		count++
		from += idx + len(word)
		if from >= len(text) {
			return count
		}
	}
}

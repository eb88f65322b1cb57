package nlp

import "strings"

var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "perfect": true,
	"nice": true, "love": true, "best": true, "reliable": true,
	"clean": true, "solid": true, "happy": true, "amazing": true,
	"fantastic": true, "like": true, "interested": true,
}

var negativeWords = map[string]bool{
	"bad": true, "poor": true, "terrible": true, "awful": true,
	"broken": true, "problem": true, "problems": true, "issue": true,
	"issues": true, "worst": true, "hate": true, "rusty": true,
	"damaged": true, "expensive": true, "overpriced": true, "disappointed": true,
}

// scoreSentiment computes a bag-of-words polarity score of +-1 per token
// hit, normalized by token count. A dead zone of |score| <= 0.1 maps to
// neutral.
func scoreSentiment(text string) Sentiment {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return Sentiment{Label: "neutral"}
	}

	raw := 0
	for _, t := range tokens {
		t = strings.Trim(t, "?.,!;:'\"()")
		switch {
		case positiveWords[t]:
			raw++
		case negativeWords[t]:
			raw--
		}
	}

	score := float64(raw) / float64(len(tokens))
	label := "neutral"
	switch {
	case score > 0.1:
		label = "positive"
	case score < -0.1:
		label = "negative"
	}
	return Sentiment{Label: label, Score: score}
}

package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ParseJSON extracts and parses a JSON document from completion output that
// may be pure JSON, JSON inside a markdown fence, or JSON surrounded by
// prose. It never trusts the model to have produced clean output.
func ParseJSON(input string, target any) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("llm: empty completion output")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if m := fenceRe.FindStringSubmatch(input); len(m) > 1 {
		if err := json.Unmarshal([]byte(m[1]), target); err == nil {
			return nil
		}
	}

	for _, pair := range [][2]rune{{'{', '}'}, {'[', ']'}} {
		if doc := balancedSlice(input, pair[0], pair[1]); doc != "" {
			if err := json.Unmarshal([]byte(doc), target); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("llm: no parsable JSON in completion output (%s…)", head(input, 80))
}

// balancedSlice returns the first balanced open..close span, skipping quoted
// strings and escapes.
func balancedSlice(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := -1

	for i, ch := range input {
		switch {
		case escape:
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close && depth > 0:
			depth--
			if depth == 0 {
				return input[start : i+len(string(ch))]
			}
		}
	}
	return ""
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

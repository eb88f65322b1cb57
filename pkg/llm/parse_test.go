package llm

import (
	"reflect"
	"testing"
)

type classifyOut struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  classifyOut
	}{
		{
			"clean JSON",
			`{"intent":"search_vehicles","confidence":0.9}`,
			classifyOut{"search_vehicles", 0.9},
		},
		{
			"markdown fence",
			"Here you go:\n```json\n{\"intent\":\"price_estimation\",\"confidence\":0.8}\n```",
			classifyOut{"price_estimation", 0.8},
		},
		{
			"fence without language tag",
			"```\n{\"intent\":\"general\",\"confidence\":0.5}\n```",
			classifyOut{"general", 0.5},
		},
		{
			"prose around the object",
			`Sure! The classification is {"intent":"market_insights","confidence":0.7} based on the text.`,
			classifyOut{"market_insights", 0.7},
		},
		{
			"braces inside strings do not confuse the scanner",
			`Answer: {"intent":"gen{eral}","confidence":1}`,
			classifyOut{"gen{eral}", 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got classifyOut
			if err := ParseJSON(tt.input, &got); err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseJSONArray(t *testing.T) {
	var got []int
	if err := ParseJSON("the list is [1, 2, 3] as requested", &got); err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseJSONFailures(t *testing.T) {
	var out classifyOut
	for _, input := range []string{"", "   ", "no json here at all", "{broken"} {
		if err := ParseJSON(input, &out); err == nil {
			t.Fatalf("ParseJSON(%q) succeeded, want error", input)
		}
	}
}

func TestClientDisabledWithoutBaseURL(t *testing.T) {
	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client reports enabled")
	}
	if c := New(DefaultOptions()); c.Enabled() {
		t.Fatal("client without BaseURL reports enabled")
	}
	opts := DefaultOptions()
	opts.BaseURL = "http://localhost:11434"
	if c := New(opts); !c.Enabled() {
		t.Fatal("configured client reports disabled")
	}
}

package semantic

import (
	"testing"
)

func TestFieldMatch(t *testing.T) {
	cond := fieldMatch("brand", "Scania")
	field := cond.GetField()
	if field == nil {
		t.Fatal("expected a field condition")
	}
	if field.GetKey() != "brand" {
		t.Fatalf("key = %q, want brand", field.GetKey())
	}
	if kw := field.GetMatch().GetKeyword(); kw != "Scania" {
		t.Fatalf("keyword = %q, want Scania", kw)
	}
}

func TestPointFromRecord(t *testing.T) {
	r := ListingRecord{
		ID:          "e3e70682-c209-4cac-a29f-6fbed82c07cd",
		Embedding:   []float32{0.1, 0.2},
		Brand:       "Volvo",
		Category:    "tractor_unit",
		Description: "FH 500 Globetrotter",
		Price:       72800,
	}
	p := pointFromRecord(r)

	if got := p.GetId().GetUuid(); got != r.ID {
		t.Fatalf("id = %q, want %q", got, r.ID)
	}
	if got := p.GetVectors().GetVector().GetData(); len(got) != 2 || got[0] != 0.1 {
		t.Fatalf("vector = %v", got)
	}
	payload := p.GetPayload()
	if payload["brand"].GetStringValue() != "Volvo" {
		t.Fatalf("brand payload = %v", payload["brand"])
	}
	if payload["price"].GetDoubleValue() != 72800 {
		t.Fatalf("price payload = %v", payload["price"])
	}
}

package extract

import (
	"errors"
	"testing"

	contractx "github.com/foodiespot/assistant/agent/contract"
)

func TestLastJSONObjectPicksLast(t *testing.T) {
	t.Parallel()

	text := `Format: {"restaurant_name": null}
User: book Luna Bistro
{"restaurant_name": "Luna Bistro"}`

	raw, ok := LastJSONObject(text)
	if !ok {
		t.Fatal("expected a JSON object")
	}
	if raw != `{"restaurant_name": "Luna Bistro"}` {
		t.Fatalf("unexpected object: %s", raw)
	}
}

func TestLastJSONObjectNone(t *testing.T) {
	t.Parallel()

	if _, ok := LastJSONObject("no structured data here"); ok {
		t.Fatal("expected no JSON object")
	}
}

func TestDecodeSlotQuery(t *testing.T) {
	t.Parallel()

	schema := ObjectSchema(map[string]string{
		"restaurant_name": "string",
		"date_time":       "string",
		"num_people":      "integer",
	})

	var q contractx.SlotQuery
	out := `{"restaurant_name": "Luna Bistro", "date_time": null, "num_people": 4}`
	if err := Decode(out, schema, &q); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if q.RestaurantName != "Luna Bistro" {
		t.Fatalf("unexpected restaurant: %s", q.RestaurantName)
	}
	if q.DateTime != "" {
		t.Fatalf("expected empty date_time, got %s", q.DateTime)
	}
	if q.NumPeople != 4 {
		t.Fatalf("unexpected num_people: %d", q.NumPeople)
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	schema := ObjectSchema(map[string]string{"num_people": "integer"})

	tests := []struct {
		name   string
		output string
	}{
		{"no json", "sorry, I cannot help with that"},
		{"invalid json", "{not valid json}"},
		{"schema violation", `{"num_people": "four"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var q contractx.SlotQuery
			err := Decode(tt.output, schema, &q)
			if err == nil {
				t.Fatal("expected error but got nil")
			}
			if !errors.Is(err, contractx.ErrNoExtraction) {
				t.Fatalf("expected ErrNoExtraction, got %v", err)
			}
		})
	}
}

func TestMissingKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	missing := Missing(
		Field{Name: "restaurant name", Present: false},
		Field{Name: "date and time", Present: true},
		Field{Name: "number of people", Present: false},
	)
	if len(missing) != 2 || missing[0] != "restaurant name" || missing[1] != "number of people" {
		t.Fatalf("unexpected missing fields: %#v", missing)
	}
}

func TestAskFor(t *testing.T) {
	t.Parallel()

	msg := AskFor([]string{"date and time", "number of people"}, "proceed with the reservation",
		[]string{"restaurant name (Luna Bistro)"})
	want := "Please provide the date and time and number of people to proceed with the reservation." +
		" I already have restaurant name (Luna Bistro)."
	if msg != want {
		t.Fatalf("unexpected message:\n got: %s\nwant: %s", msg, want)
	}
}

func TestNormalizeDateTime(t *testing.T) {
	t.Parallel()

	got, err := NormalizeDateTime(" 2024-03-01 19:00 ")
	if err != nil {
		t.Fatalf("NormalizeDateTime() error = %v", err)
	}
	if got != "2024-03-01 19:00" {
		t.Fatalf("unexpected normalized value: %s", got)
	}

	if _, err := NormalizeDateTime("tomorrow at 7"); err == nil {
		t.Fatal("expected format error")
	}
	if _, err := NormalizeDateTime("2024-03-01T19:00"); err == nil {
		t.Fatal("expected format error for wrong separator")
	}
}

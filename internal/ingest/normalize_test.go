package ingest

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalize_SingleObjectWraps(t *testing.T) {
	batch := Normalize(json.RawMessage(`{"heading":"h","summary":"s"}`))
	if len(batch) != 1 {
		t.Fatalf("expected one candidate, got %d", len(batch))
	}
	c := batch[0]
	if c.Index != 0 || c.Heading != "h" || c.Summary != "s" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.Keypoints == nil || c.Tags == nil {
		t.Fatalf("list fields must never be nil: %+v", c)
	}
}

func TestNormalize_ArrayPreservesOrderAndIndex(t *testing.T) {
	batch := Normalize(json.RawMessage(`[
		{"heading":"a","summary":"1"},
		{"heading":"b","summary":"2"},
		{"heading":"c","summary":"3"}
	]`))
	if len(batch) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(batch))
	}
	for i, want := range []string{"a", "b", "c"} {
		if batch[i].Index != i || batch[i].Heading != want {
			t.Fatalf("candidate %d out of order: %+v", i, batch[i])
		}
	}
}

func TestNormalize_NonObjectItemsBecomeEmptyCandidates(t *testing.T) {
	batch := Normalize(json.RawMessage(`[{"heading":"a","summary":"1"}, 42, "x"]`))
	if len(batch) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(batch))
	}
	for _, i := range []int{1, 2} {
		if batch[i].Heading != "" || batch[i].Summary != "" {
			t.Fatalf("non-object item %d should yield an empty candidate: %+v", i, batch[i])
		}
		if batch[i].Index != i {
			t.Fatalf("index not preserved: %+v", batch[i])
		}
	}
}

func TestNormalize_ScalarFieldCoercion(t *testing.T) {
	batch := Normalize(json.RawMessage(`{"heading":5,"summary":true}`))
	c := batch[0]
	if c.Heading != "5" || c.Summary != "true" {
		t.Fatalf("scalars must coerce to text: %+v", c)
	}
}

func TestToStringList_Shapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"json array", []any{"a", "b"}, []string{"a", "b"}},
		{"mixed array", []any{"a", float64(2), true}, []string{"a", "2", "true"}},
		{"array in string", `["x","y"]`, []string{"x", "y"}},
		{"comma delimited", "one, two,three", []string{"one", "two", "three"}},
		{"newline delimited", "one\ntwo\n\nthree", []string{"one", "two", "three"}},
		{"blank string", "   ", []string{}},
		{"scalar", float64(7), []string{}},
		{"object", map[string]any{"k": "v"}, []string{}},
	}
	for _, tc := range cases {
		if got := toStringList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAsText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{float64(3), "3"},
		{float64(3.5), "3.5"},
		{true, "true"},
		{[]any{"a"}, `["a"]`},
	}
	for _, tc := range cases {
		if got := asText(tc.in); got != tc.want {
			t.Fatalf("asText(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package ingest

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtract_StructuredPassthrough(t *testing.T) {
	for _, raw := range []string{
		`{"heading":"h","summary":"s"}`,
		`[{"heading":"a"},{"heading":"b"}]`,
	} {
		got, err := Extract([]byte(raw))
		if err != nil {
			t.Fatalf("Extract(%q) error: %v", raw, err)
		}
		if string(got) != raw {
			t.Fatalf("structured input must pass through unchanged: got %q", got)
		}
	}
}

func TestExtract_ScalarPassthrough(t *testing.T) {
	// Non-string scalars are not extraction failures; they surface later as
	// per-item validation errors.
	got, err := Extract([]byte(`42`))
	if err != nil {
		t.Fatalf("Extract(42) error: %v", err)
	}
	if string(got) != "42" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestExtract_FencedBlockWithLanguageTag(t *testing.T) {
	body := "Here is the result:\n```json\n{\"heading\":\"h\",\"summary\":\"s\"}\n```\nthanks"
	raw, _ := json.Marshal(body) // submitted as a JSON string

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(got, &m); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if m["heading"] != "h" || m["summary"] != "s" {
		t.Fatalf("unexpected payload: %v", m)
	}
}

func TestExtract_FencedBlockNoTag(t *testing.T) {
	raw, _ := json.Marshal("```\n[1, 2]\n```")
	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if string(got) != "[1, 2]" {
		t.Fatalf("unexpected payload: %q", got)
	}
}

func TestExtract_FirstFenceWins(t *testing.T) {
	raw, _ := json.Marshal("```json\n{\"heading\":\"first\"}\n```\n```json\n{\"heading\":\"second\"}\n```")
	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(got, &m); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if m["heading"] != "first" {
		t.Fatalf("expected first fenced block, got %v", m)
	}
}

func TestExtract_UnclosedFenceFallsBackToBareParse(t *testing.T) {
	// A lone ``` is not a fence, so the whole string must parse, and fails.
	raw, _ := json.Marshal("```json\n{\"heading\":\"h\"}")
	if _, err := Extract(raw); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestExtract_BareJSONString(t *testing.T) {
	raw, _ := json.Marshal(`  {"heading":"h","summary":"s"}  `)
	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(got, &m); err != nil || m["heading"] != "h" {
		t.Fatalf("unexpected payload %q (err %v)", got, err)
	}
}

func TestExtract_PlainTextBodyWithFence(t *testing.T) {
	// Raw non-JSON bodies are treated as the submitted string directly.
	body := []byte("model says:\n```json\n{\"heading\":\"h\",\"summary\":\"s\"}\n```")
	got, err := Extract(body)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(got, &m); err != nil || m["summary"] != "s" {
		t.Fatalf("unexpected payload %q (err %v)", got, err)
	}
}

func TestExtract_MalformedFencedPayloadRejected(t *testing.T) {
	// A found fence must parse; there is no fallback to the outer string.
	raw, _ := json.Marshal("```json\nnot json at all\n```")
	if _, err := Extract(raw); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestExtract_GarbageRejected(t *testing.T) {
	for _, raw := range []string{"", "   ", "totally not json", `"also not json"`} {
		if _, err := Extract([]byte(raw)); !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("Extract(%q): expected ErrInvalidJSON, got %v", raw, err)
		}
	}
}

func TestFencedPayload_PayloadOnOpeningLine(t *testing.T) {
	payload, found := fencedPayload("``` {\"a\":1} ```")
	if !found {
		t.Fatalf("fence not found")
	}
	if payload != `{"a":1}` {
		t.Fatalf("unexpected payload: %q", payload)
	}
}

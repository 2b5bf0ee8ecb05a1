package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestEventLog_AppendAndRead(t *testing.T) {
	for _, backend := range []Backend{BackendSQLite, BackendJSON} {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			s := Store{Dir: t.TempDir(), Backend: backend}

			if err := s.AppendEvent(ctx, "goal.update", "sub-2025-0", 2025, map[string]any{"text": "연구"}); err != nil {
				t.Fatalf("append 1: %v", err)
			}
			if err := s.AppendEvent(ctx, "goal.expand", "sub-2025-0-sub-1", 2025, nil); err != nil {
				t.Fatalf("append 2: %v", err)
			}

			evs, err := s.ReadEvents(ctx, 0)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if len(evs) != 2 {
				t.Fatalf("expected 2 events, got %d", len(evs))
			}
			if evs[0].Type != "goal.update" || evs[0].EntityID != "sub-2025-0" || evs[0].Year != 2025 {
				t.Fatalf("unexpected first event: %+v", evs[0])
			}
			raw, ok := evs[0].Payload.(json.RawMessage)
			if !ok {
				t.Fatalf("expected raw payload, got %T", evs[0].Payload)
			}
			var p map[string]string
			if err := json.Unmarshal(raw, &p); err != nil || p["text"] != "연구" {
				t.Fatalf("unexpected payload %s (%v)", raw, err)
			}
			if evs[0].ID == "" || evs[0].TS.IsZero() {
				t.Fatalf("expected id and ts to be set: %+v", evs[0])
			}

			last, err := s.ReadEvents(ctx, 1)
			if err != nil {
				t.Fatalf("read limit: %v", err)
			}
			if len(last) != 1 || last[0].Type != "goal.expand" {
				t.Fatalf("expected only the newest event, got %+v", last)
			}
		})
	}
}

func TestEventLog_RejectsMissingFields(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent(context.Background(), "", "x", 0, nil); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if err := s.AppendEvent(context.Background(), "goal.update", " ", 0, nil); err == nil {
		t.Fatalf("expected error for missing entity id")
	}
}

func TestReadEventsJSONL_MissingFileIsEmpty(t *testing.T) {
	evs, err := ReadEventsJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("expected no events, got %d", len(evs))
	}
}

package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mandalart-cli/internal/model"
)

// wireEvent keeps the payload raw so it round-trips byte-for-byte.
type wireEvent struct {
	model.Event
	Payload json.RawMessage `json:"payload"`
}

func appendEventJSONL(path string, ev model.Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(b, '\n'))
	return err
}

// WriteEventsJSONL writes evs to path, one JSON object per line.
func WriteEventsJSONL(path string, evs []model.Event) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ev := range evs {
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, buf.Bytes(), 0o644)
}

// ReadEventsJSONL reads a JSONL event file. A missing file is an empty log.
func ReadEventsJSONL(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	out := []model.Event{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var w wireEvent
		if err := json.Unmarshal(b, &w); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filepath.Base(path), line, err)
		}
		ev := w.Event
		ev.Payload = rawPayload(string(w.Payload))
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

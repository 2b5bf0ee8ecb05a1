package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formats lists the accepted --format values.
var Formats = []string{"json", "edn", "yaml", "toml"}

// Write writes v in the requested format. Every format is derived from the
// JSON encoding of v, so json struct tags decide field names everywhere.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "yaml", "yml":
		return WriteYAML(w, v)
	case "toml":
		return WriteTOML(w, v)
	default:
		return fmt.Errorf("unknown format: %s (expected %s)", format, strings.Join(Formats, "|"))
	}
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// generic round-trips v through JSON into maps, slices and scalars.
func generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return nil, err
	}
	return x, nil
}

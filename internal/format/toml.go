package format

import (
	"errors"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// WriteTOML writes v as a TOML document. TOML has no null, so nil values are
// dropped, and the top level must be a table.
func WriteTOML(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	m, ok := dropNils(x).(map[string]any)
	if !ok {
		return errors.New("toml output requires an object at the top level")
	}
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(m)
}

func dropNils(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			if x == nil {
				continue
			}
			out[k] = dropNils(x)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, x := range t {
			if x == nil {
				continue
			}
			out = append(out, dropNils(x))
		}
		return out
	default:
		return v
	}
}

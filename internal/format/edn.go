package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of v covering maps, vectors, strings,
// numbers, booleans and nil. Map keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	e := ednEncoder{buf: &buf, pretty: pretty, indent: 2}
	e.value(x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	buf    *bytes.Buffer
	pretty bool
	indent int
}

func (e ednEncoder) value(v any, level int) {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		e.buf.WriteString(strconv.Quote(t))
	case float64:
		// Integral JSON numbers print without a fraction.
		if float64(int64(t)) == t {
			e.buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		e.buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.seq('[', ']', len(t), level, func(i int) { e.value(t[i], level+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq('{', '}', len(keys), level, func(i int) {
			e.buf.WriteByte(':')
			e.buf.WriteString(ednKeyword(keys[i]))
			e.buf.WriteByte(' ')
			e.value(t[keys[i]], level+1)
		})
	default:
		e.buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

// seq writes n elements between open and close, one per line when pretty.
func (e ednEncoder) seq(open, close byte, n, level int, elem func(i int)) {
	e.buf.WriteByte(open)
	if n == 0 {
		e.buf.WriteByte(close)
		return
	}
	for i := 0; i < n; i++ {
		switch {
		case e.pretty:
			e.buf.WriteByte('\n')
			e.buf.WriteString(strings.Repeat(" ", (level+1)*e.indent))
		case i > 0:
			e.buf.WriteByte(' ')
		}
		elem(i)
	}
	if e.pretty {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
	e.buf.WriteByte(close)
}

func ednKeyword(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}

package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fbkclanna/cargows/internal/apperr"
)

// header is a [table] or [[array-table]] line.
type header struct {
	name    string
	array   bool
	lineEnd int
}

// entry is a key/value statement. valStart:valEnd is the value text without
// surrounding whitespace or trailing comment; lineEnd is just past the
// statement's terminating newline.
type entry struct {
	table    string
	key      string
	valStart int
	valEnd   int
	lineEnd  int
}

// Editor applies value-level edits to manifest text while leaving every
// other byte in place.
type Editor struct {
	data    []byte
	headers []header
	entries []entry
}

// NewEditor validates data as TOML and indexes its tables and keys.
func NewEditor(data []byte) (*Editor, error) {
	if _, err := Parse(data); err != nil {
		return nil, err
	}
	e := &Editor{data: append([]byte(nil), data...)}
	if err := e.scan(); err != nil {
		return nil, err
	}
	return e, nil
}

// Bytes returns the current document text.
func (e *Editor) Bytes() []byte {
	return e.data
}

// HasTable reports whether a [table] header with this dotted name exists.
func (e *Editor) HasTable(table string) bool {
	_, ok := e.header(table)
	return ok
}

// lookup returns the raw value text of table.key.
func (e *Editor) lookup(table, key string) (string, bool) {
	en, ok := e.find(table, key)
	if !ok {
		return "", false
	}
	return string(e.data[en.valStart:en.valEnd]), true
}

// SetString sets table.key to a basic string.
func (e *Editor) SetString(table, key, value string) error {
	return e.set(table, key, quote(value))
}

// SetStrings sets table.key to an inline array of basic strings.
func (e *Editor) SetStrings(table, key string, values []string) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = quote(v)
	}
	return e.set(table, key, "["+strings.Join(parts, ", ")+"]")
}

// set replaces the value of an existing key, or appends "key = value" as
// the last statement of the table. The edited document must still parse.
func (e *Editor) set(table, key, raw string) error {
	var next []byte
	if en, ok := e.find(table, key); ok {
		next = splice(e.data, en.valStart, en.valEnd, raw)
	} else {
		at, ok := e.insertionPoint(table)
		if !ok {
			return fmt.Errorf("%w: no [%s] table", apperr.ErrSchema, table)
		}
		line := formatKey(key) + " = " + raw + "\n"
		if at > 0 && e.data[at-1] != '\n' {
			line = "\n" + line
		}
		next = splice(e.data, at, at, line)
	}

	if _, err := Parse(next); err != nil {
		return fmt.Errorf("setting %s.%s: %w", table, key, err)
	}
	e.data = next
	return e.scan()
}

func (e *Editor) header(table string) (header, bool) {
	for _, h := range e.headers {
		if !h.array && h.name == table {
			return h, true
		}
	}
	return header{}, false
}

func (e *Editor) find(table, key string) (entry, bool) {
	want := joinKey(table, key)
	for _, en := range e.entries {
		if joinKey(en.table, en.key) == want {
			return en, true
		}
	}
	return entry{}, false
}

func (e *Editor) insertionPoint(table string) (int, bool) {
	h, ok := e.header(table)
	if !ok {
		return 0, false
	}
	at := h.lineEnd
	for _, en := range e.entries {
		if en.table == table && en.lineEnd > at {
			at = en.lineEnd
		}
	}
	return at, true
}

// scan indexes headers and key/value statements. The input is already known
// to be valid TOML, so the scanner only has to track strings, brackets and
// comments well enough to find statement boundaries.
func (e *Editor) scan() error {
	e.headers = e.headers[:0]
	e.entries = e.entries[:0]

	d := e.data
	n := len(d)
	table := ""
	i := 0
	for i < n {
		switch d[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		case '#':
			i = lineEnd(d, i)
			continue
		case '[':
			array := i+1 < n && d[i+1] == '['
			start := i + 1
			if array {
				start++
			}
			end := indexUnquoted(d, start, ']')
			if end < 0 {
				return fmt.Errorf("%w: unterminated table header at offset %d", apperr.ErrParse, i)
			}
			name := normalizeKey(string(d[start:end]))
			i = lineEnd(d, end)
			e.headers = append(e.headers, header{name: name, array: array, lineEnd: i})
			table = name
			if array {
				// Keys under an array table belong to one element; never edited.
				table = "[[" + name + "]]"
			}
			continue
		}

		eq := indexUnquoted(d, i, '=')
		if eq < 0 {
			return fmt.Errorf("%w: expected key = value at offset %d", apperr.ErrParse, i)
		}
		key := normalizeKey(string(d[i:eq]))
		j := eq + 1
		for j < n && (d[j] == ' ' || d[j] == '\t') {
			j++
		}
		valStart := j
		valEnd := scanValue(d, j)
		e.entries = append(e.entries, entry{
			table:    table,
			key:      key,
			valStart: valStart,
			valEnd:   valEnd,
			lineEnd:  lineEnd(d, valEnd),
		})
		i = lineEnd(d, valEnd)
	}
	return nil
}

// scanValue returns the end offset of the value starting at i, excluding
// trailing whitespace and comments.
func scanValue(d []byte, i int) int {
	n := len(d)
	depth := 0
	for i < n {
		switch c := d[i]; {
		case c == '"' || c == '\'':
			i = skipString(d, i)
		case c == '[' || c == '{':
			depth++
			i++
		case c == ']' || c == '}':
			depth--
			i++
		case c == '#':
			if depth == 0 {
				return trimRight(d, i)
			}
			i = lineEnd(d, i)
		case c == '\n':
			if depth == 0 {
				return trimRight(d, i)
			}
			i++
		default:
			i++
		}
	}
	return trimRight(d, n)
}

// skipString returns the offset just past the string literal starting at i.
func skipString(d []byte, i int) int {
	n := len(d)
	q := d[i]
	triple := bytes.HasPrefix(d[i:], []byte{q, q, q})
	if triple {
		i += 3
		for i < n {
			if q == '"' && d[i] == '\\' {
				i += 2
				continue
			}
			if bytes.HasPrefix(d[i:], []byte{q, q, q}) {
				i += 3
				// Up to two quote characters may directly precede the delimiter.
				for k := 0; k < 2 && i < n && d[i] == q; k++ {
					i++
				}
				return i
			}
			i++
		}
		return n
	}
	i++
	for i < n && d[i] != q && d[i] != '\n' {
		if q == '"' && d[i] == '\\' {
			i++
		}
		i++
	}
	return i + 1
}

// indexUnquoted finds c at or after i on the current line, skipping quoted keys.
func indexUnquoted(d []byte, i int, c byte) int {
	for i < len(d) && d[i] != '\n' {
		switch d[i] {
		case '"', '\'':
			i = skipString(d, i)
			continue
		case c:
			return i
		}
		i++
	}
	return -1
}

// lineEnd returns the offset just past the newline that ends the line
// containing i, or len(d) on the last line.
func lineEnd(d []byte, i int) int {
	if k := bytes.IndexByte(d[i:], '\n'); k >= 0 {
		return i + k + 1
	}
	return len(d)
}

func trimRight(d []byte, end int) int {
	for end > 0 && (d[end-1] == ' ' || d[end-1] == '\t' || d[end-1] == '\r') {
		end--
	}
	return end
}

func splice(d []byte, start, end int, s string) []byte {
	out := make([]byte, 0, len(d)-(end-start)+len(s))
	out = append(out, d[:start]...)
	out = append(out, s...)
	return append(out, d[end:]...)
}

// normalizeKey turns `a . "b.c" . 'd'` into the canonical dotted form a.b.c.d
// with quoted segments unwrapped.
func normalizeKey(raw string) string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '"', '\'':
			end := strings.IndexByte(raw[i+1:], c)
			if end < 0 {
				cur.WriteString(raw[i+1:])
				i = len(raw)
				continue
			}
			cur.WriteString(raw[i+1 : i+1+end])
			i += end + 1
		case '.':
			parts = append(parts, cur.String())
			cur.Reset()
		case ' ', '\t':
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return strings.Join(parts, ".")
}

func joinKey(table, key string) string {
	if table == "" {
		return key
	}
	return table + "." + key
}

func formatKey(key string) string {
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return quote(key)
		}
	}
	return key
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

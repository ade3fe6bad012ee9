package sdif

import (
	"fmt"
	"strings"
)

// NameValueTable is the metadata table an SDIF file carries in 1NVT
// frames: creator, date, sample rate and similar key-value pairs.
// Entries keep insertion order so a table round-trips byte-identically.
type NameValueTable struct {
	names  []string
	values map[string]string
}

func NewNameValueTable() *NameValueTable {
	return &NameValueTable{values: make(map[string]string)}
}

// Set adds or replaces an entry. Names and values must not contain the
// tab or semicolon delimiters of the wire form.
func (t *NameValueTable) Set(name, value string) error {
	if name == "" || strings.ContainsAny(name, "\t;\n") || strings.ContainsAny(value, "\t;\n") {
		return fmt.Errorf("sdif: invalid name-value entry %q=%q", name, value)
	}
	if _, ok := t.values[name]; !ok {
		t.names = append(t.names, name)
	}
	t.values[name] = value
	return nil
}

func (t *NameValueTable) Get(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

func (t *NameValueTable) Len() int { return len(t.names) }

// Names returns the entry names in insertion order.
func (t *NameValueTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Matrix encodes the table as the Text matrix of a 1NVT frame, one
// "name\tvalue;\n" row per entry.
func (t *NameValueTable) Matrix() Matrix {
	var sb strings.Builder
	for _, name := range t.names {
		sb.WriteString(name)
		sb.WriteByte('\t')
		sb.WriteString(t.values[name])
		sb.WriteString(";\n")
	}
	return NewTextMatrix(SigNVT, sb.String())
}

// Frame wraps the table in a 1NVT frame at time 0 on stream 0, the
// position metadata frames conventionally take at the head of a file.
func (t *NameValueTable) Frame() Frame {
	return Frame{Signature: SigNVT, Time: 0, StreamID: 0, Matrices: []Matrix{t.Matrix()}}
}

// ParseNameValueTable decodes the Text matrix of a 1NVT frame.
func ParseNameValueTable(m Matrix) (*NameValueTable, error) {
	text, err := m.TextString()
	if err != nil {
		return nil, err
	}
	t := NewNameValueTable()
	for _, row := range strings.Split(text, ";") {
		row = strings.TrimLeft(row, "\n\r ")
		if row == "" {
			continue
		}
		name, value, ok := strings.Cut(row, "\t")
		if !ok {
			return nil, fmt.Errorf("sdif: malformed name-value row %q", row)
		}
		if err := t.Set(name, value); err != nil {
			return nil, err
		}
	}
	return t, nil
}

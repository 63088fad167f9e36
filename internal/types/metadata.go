package types

import (
	"bytes"
	"encoding/json"
	"io"
	"iter"

	"github.com/simonhull/imagemeta/internal/binary"
)

// Field is a single named metadata value.
//
// Values are always the string rendering of the decoded quantity,
// never raw header bytes.
type Field struct {
	Name  string
	Value string
}

// Metadata is the ordered result of one decode call.
//
// Field names are unique and iteration follows insertion order, which is
// the order the decoder discovered the fields. A Metadata is filled only
// through a Builder and is read-only once returned to the caller.
type Metadata struct {
	index  map[string]int
	fields []Field
	format Format
}

// NewMetadata returns an empty set for the given format.
func NewMetadata(format Format) *Metadata {
	return &Metadata{
		index:  make(map[string]int),
		format: format,
	}
}

// Format returns the format whose strategy produced the set.
func (m *Metadata) Format() Format {
	return m.format
}

// add appends a field. Adding a name that is already present fails with
// *DuplicateFieldError and leaves the set unchanged.
func (m *Metadata) add(name, value string) error {
	if _, exists := m.index[name]; exists {
		return &DuplicateFieldError{Name: name}
	}
	m.index[name] = len(m.fields)
	m.fields = append(m.fields, Field{Name: name, Value: value})
	return nil
}

// Get returns the value stored under name.
func (m *Metadata) Get(name string) (string, bool) {
	i, ok := m.index[name]
	if !ok {
		return "", false
	}
	return m.fields[i].Value, true
}

// Has reports whether a field named name is present.
func (m *Metadata) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Len returns the number of fields.
func (m *Metadata) Len() int {
	return len(m.fields)
}

// Names returns field names in insertion order.
func (m *Metadata) Names() []string {
	names := make([]string, len(m.fields))
	for i, f := range m.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the fields in insertion order.
func (m *Metadata) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// All returns an iterator over name/value pairs in insertion order.
//
// Example:
//
//	for name, value := range md.All() {
//		fmt.Printf("%s: %s\n", name, value)
//	}
func (m *Metadata) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range m.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the set as a JSON object whose keys keep insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteTo writes one "name: value" line per field and implements io.WriterTo.
func (m *Metadata) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	for _, f := range m.fields {
		if err := sw.WriteString(f.Name + ": " + f.Value + "\n"); err != nil {
			return sw.Offset(), err
		}
	}
	return sw.Offset(), nil
}

// Builder assembles a Metadata with deferred error checking.
// The first failed Add sticks and later calls are ignored.
type Builder struct {
	md  *Metadata
	err error
}

// NewBuilder starts an empty set for the given format.
func NewBuilder(format Format) *Builder {
	return &Builder{md: NewMetadata(format)}
}

// Add appends a field unless a previous Add failed.
func (b *Builder) Add(name, value string) {
	if b.err != nil {
		return
	}
	b.err = b.md.add(name, value)
}

// Metadata returns the assembled set, or the first error encountered.
// No partial set is returned on error.
func (b *Builder) Metadata() (*Metadata, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.md, nil
}

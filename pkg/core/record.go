// Package core holds the content model: schema-less records, the typed value
// union their fields carry, and the form round trip used to edit them.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IDField is the field treated as a record's identity.
const IDField = "id"

// Record is one schema-less JSON object.
// Field order follows the source document; new fields are appended.
type Record struct {
	keys   []string
	fields map[string]Value
}

// Field is a name/value pair used to build records in order.
type Field struct {
	Name  string
	Value Value
}

// NewRecord builds a record from fields in the given order.
// A repeated name overwrites the earlier value in place.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// F is shorthand for Field{name, v}.
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

func (r Record) Len() int { return len(r.keys) }

// Keys returns the field names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Get returns the field value; a missing field reads as null with ok=false.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Set adds or replaces a field.
func (r *Record) Set(name string, v Value) {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}
	if _, ok := r.fields[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.fields[name] = v
}

// Delete removes a field if present.
func (r *Record) Delete(name string) {
	if _, ok := r.fields[name]; !ok {
		return
	}
	delete(r.fields, name)
	for i, k := range r.keys {
		if k == name {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Text returns the display text of a field, or fallback when it is absent.
func (r Record) Text(name, fallback string) string {
	v, ok := r.fields[name]
	if !ok {
		return fallback
	}
	return v.Text()
}

// ID returns the display text of the id field.
func (r Record) ID() (string, bool) {
	v, ok := r.fields[IDField]
	if !ok {
		return "", false
	}
	return v.Text(), true
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	c := Record{
		keys:   make([]string, len(r.keys)),
		fields: make(map[string]Value, len(r.fields)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.fields {
		c.fields[k] = v.Clone()
	}
	return c
}

// Equal reports whether both records carry the same fields with equal values.
// Field order is ignored.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for k, v := range r.fields {
		ov, ok := o.fields[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("record(%d fields)", r.Len())
	}
	return string(b)
}

// MarshalJSON encodes the record as an object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r Record) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := r.fields[k].encode(buf); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record must be a json object, got %v", tok)
	}
	rec, err := decodeRecordBody(dec)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// decodeRecordBody reads object members after the opening brace.
func decodeRecordBody(dec *json.Decoder) (Record, error) {
	rec := Record{fields: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, fmt.Errorf("invalid json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("invalid json: object key %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Record{}, err
		}
		rec.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Record{}, fmt.Errorf("invalid json: %w", err)
	}
	return rec, nil
}

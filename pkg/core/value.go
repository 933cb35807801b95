package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the shape of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one JSON value as it appears in a record field.
// The zero Value is null.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
	list []Value
	m    *Record
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps i.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps f.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List wraps the given items.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Strings is a convenience for a list of string values.
func Strings(items ...string) Value {
	vs := make([]Value, len(items))
	for i, s := range items {
		vs[i] = String(s)
	}
	return List(vs...)
}

// Map wraps a nested record.
func Map(r Record) Value {
	c := r.Clone()
	return Value{kind: KindMap, m: &c}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// IntValue returns the integer payload and whether v is an int.
func (v Value) IntValue() (int64, bool) { return v.i, v.kind == KindInt }

// FloatValue returns the float payload and whether v is a float.
func (v Value) FloatValue() (float64, bool) { return v.f, v.kind == KindFloat }

// BoolValue returns the bool payload and whether v is a bool.
func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

// Items returns the list payload. The slice must not be modified.
func (v Value) Items() []Value { return v.list }

// Record returns the nested record of a map value.
func (v Value) Record() (Record, bool) {
	if v.kind != KindMap || v.m == nil {
		return Record{}, false
	}
	return *v.m, true
}

// Text is the plain string form of v used for single-line controls and list labels.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// IndentedJSON renders v as JSON indented by two spaces.
func (v Value) IndentedJSON() (string, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Equal reports structural equality. Int(1) and Float(1) differ.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		a, _ := v.Record()
		b, _ := o.Record()
		return a.Equal(b)
	}
	return false
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, it := range v.list {
			items[i] = it.Clone()
		}
		return Value{kind: KindList, list: items}
	case KindMap:
		r, _ := v.Record()
		return Map(r)
	}
	return v
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.Text())
}

// MarshalJSON encodes v without HTML escaping.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		return encodeString(buf, v.s)
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return fmt.Errorf("unsupported float value: %v", v.f)
		}
		buf.WriteString(formatFloat(v.f))
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindList:
		buf.WriteByte('[')
		for i, it := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		r, _ := v.Record()
		return r.encode(buf)
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

// UnmarshalJSON decodes any JSON value into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	val, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// ParseValue decodes a single JSON document. Trailing data is an error.
func ParseValue(text string) (Value, error) {
	r := strings.NewReader(text)
	dec := json.NewDecoder(r)
	dec.UseNumber()
	val, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	rest, err := io.ReadAll(io.MultiReader(dec.Buffered(), r))
	if err != nil {
		return Value{}, err
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return Value{}, fmt.Errorf("invalid json: trailing data after value")
	}
	return val, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("invalid json: %w", err)
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberValue(t)
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				it, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, it)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("invalid json: %w", err)
			}
			return List(items...), nil
		case '{':
			r, err := decodeRecordBody(dec)
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindMap, m: &r}, nil
		}
	}
	return Value{}, fmt.Errorf("invalid json: unexpected token %v", tok)
}

func numberValue(n json.Number) (Value, error) {
	lit := n.String()
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", lit, err)
	}
	return Float(f), nil
}

// formatFloat prints f with the shortest round-trip digits, keeping a
// fractional part on integral values so the kind survives a reload.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MultiLineThreshold is the string length (in characters) above which a
// string field is edited in a multi-line control.
const MultiLineThreshold = 70

// ControlKind selects the widget used for a field.
type ControlKind int

const (
	SingleLine ControlKind = iota
	MultiLine
)

func (k ControlKind) String() string {
	if k == MultiLine {
		return "multi-line"
	}
	return "single-line"
}

// Control is the editable state of one field: its label, widget kind,
// the original value and the current text.
type Control struct {
	Field    string
	Label    string
	Kind     ControlKind
	Original Value
	Text     string
	initial  string
}

// Dirty reports whether the text differs from what the form was built with.
func (c Control) Dirty() bool { return c.Text != c.initial }

// Form is the set of controls built from one record.
type Form struct {
	controls []*Control
	byField  map[string]*Control
}

// BuildForm creates one control per field of rec, skipping excluded names.
func BuildForm(rec Record, excluded ...string) *Form {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	f := &Form{byField: make(map[string]*Control)}
	for _, name := range rec.Keys() {
		if skip[name] {
			continue
		}
		v, _ := rec.Get(name)
		kind, text := controlFor(v)
		c := &Control{
			Field:    name,
			Label:    Label(name),
			Kind:     kind,
			Original: v,
			Text:     text,
			initial:  text,
		}
		f.controls = append(f.controls, c)
		f.byField[name] = c
	}
	return f
}

func controlFor(v Value) (ControlKind, string) {
	switch v.Kind() {
	case KindString:
		s, _ := v.Str()
		if strings.Contains(s, "\n") || utf8.RuneCountInString(s) > MultiLineThreshold {
			return MultiLine, s
		}
		return SingleLine, s
	case KindList, KindMap:
		text, err := v.IndentedJSON()
		if err != nil {
			return MultiLine, v.Text()
		}
		return MultiLine, text
	default:
		return SingleLine, v.Text()
	}
}

// Label upper-cases only the first character of a field name.
func Label(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Controls returns the controls in field order.
func (f *Form) Controls() []Control {
	out := make([]Control, len(f.controls))
	for i, c := range f.controls {
		out[i] = *c
	}
	return out
}

// Len is the number of controls.
func (f *Form) Len() int { return len(f.controls) }

// Control looks up the control for a field.
func (f *Form) Control(field string) (Control, bool) {
	c, ok := f.byField[field]
	if !ok {
		return Control{}, false
	}
	return *c, true
}

// Has reports whether a control exists for field.
func (f *Form) Has(field string) bool {
	_, ok := f.byField[field]
	return ok
}

// Text returns the current text of a field's control.
func (f *Form) Text(field string) (string, bool) {
	c, ok := f.byField[field]
	if !ok {
		return "", false
	}
	return c.Text, true
}

// Set replaces the edited text of a field. It reports false when the form
// has no control for it.
func (f *Form) Set(field, text string) bool {
	c, ok := f.byField[field]
	if !ok {
		return false
	}
	c.Text = text
	return true
}

// Dirty reports whether any control was edited.
func (f *Form) Dirty() bool {
	for _, c := range f.controls {
		if c.Dirty() {
			return true
		}
	}
	return false
}

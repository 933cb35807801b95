package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoercionWarning reports a JSON-shaped field whose edited text did not parse.
// The field was kept as a plain string.
type CoercionWarning struct {
	Field string
	Text  string
	Err   error
}

func (w CoercionWarning) Error() string {
	return fmt.Sprintf("could not parse JSON for field %q, saved as string: %v", w.Field, w.Err)
}

func (w CoercionWarning) Unwrap() error { return w.Err }

// Reconciled is the outcome of merging a form back into its record.
type Reconciled struct {
	Record   Record
	Warnings []CoercionWarning
}

type reconcileOptions struct {
	splitLists bool
}

// ReconcileOption tunes Reconcile.
type ReconcileOption func(*reconcileOptions)

// WithListSplitFallback makes list fields whose text is not valid JSON fall
// back to a comma-separated list of trimmed, non-empty strings instead of a
// raw string.
func WithListSplitFallback() ReconcileOption {
	return func(o *reconcileOptions) { o.splitLists = true }
}

// Reconcile rebuilds orig from the edited controls in form. Every field of
// orig survives; fields without a control are copied unchanged. Each edited
// text is coerced back to the type of the original value.
func Reconcile(orig Record, form *Form, opts ...ReconcileOption) Reconciled {
	var o reconcileOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := Reconciled{Record: orig.Clone()}
	if form != nil {
		for _, c := range form.controls {
			v, warn := coerce(c.Field, c.Original, c.Text, o)
			if warn != nil {
				out.Warnings = append(out.Warnings, *warn)
			}
			out.Record.Set(c.Field, v)
		}
	}

	if id, ok := orig.Get(IDField); ok && (form == nil || !form.Has(IDField)) {
		out.Record.Set(IDField, id.Clone())
	}
	return out
}

func coerce(field string, orig Value, text string, o reconcileOptions) (Value, *CoercionWarning) {
	switch orig.Kind() {
	case KindList, KindMap:
		v, err := ParseValue(text)
		if err == nil {
			return v, nil
		}
		if o.splitLists && orig.Kind() == KindList {
			return splitList(text), nil
		}
		return String(text), &CoercionWarning{Field: field, Text: text, Err: err}
	case KindInt:
		if i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
			return Int(i), nil
		}
		return String(text), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return String(text), nil
		}
		return Float(f), nil
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "1", "yes":
			return Bool(true), nil
		}
		return Bool(false), nil
	case KindNull:
		if text == "" || strings.EqualFold(text, "null") {
			return Null(), nil
		}
		return String(text), nil
	default:
		return String(text), nil
	}
}

func splitList(text string) Value {
	items := []Value{}
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, String(p))
		}
	}
	return List(items...)
}

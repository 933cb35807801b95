package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() Record {
	return NewRecord(
		F("id", String("P007")),
		F("text", String("AI passes the bar exam")),
		F("body", String("line one\nline two")),
		F("year", Int(2027)),
		F("confidence", Float(0.75)),
		F("whole", Float(2)),
		F("resolved", Bool(false)),
		F("outcome", Null()),
		F("tags", Strings("law", "ai")),
		F("sources", Map(NewRecord(F("url", String("https://example.com")), F("rank", Int(1))))),
		F("empty", List()),
	)
}

func TestReconcile_NoEditIsIdentity(t *testing.T) {
	recs := []Record{
		sampleRecord(),
		NewRecord(),
		NewRecord(F("id", Int(3)), F("flag", Bool(true))),
	}
	for _, rec := range recs {
		got := Reconcile(rec, BuildForm(rec))
		assert.Empty(t, got.Warnings)
		assert.True(t, got.Record.Equal(rec), "got %s want %s", got.Record, rec)
	}
}

func TestReconcile_NoFieldLoss(t *testing.T) {
	rec := sampleRecord()
	form := BuildForm(rec, "body", "tags", "id")
	form.Set("text", "changed")

	got := Reconcile(rec, form).Record
	for _, k := range rec.Keys() {
		assert.True(t, got.Has(k), "missing %s", k)
	}
	assert.Equal(t, rec.Len(), got.Len())
	assert.Equal(t, "P007", got.Text("id", ""))
	assert.Equal(t, "line one\nline two", got.Text("body", ""))
}

func TestReconcile_NilForm(t *testing.T) {
	rec := sampleRecord()
	got := Reconcile(rec, nil)
	assert.True(t, got.Record.Equal(rec))
}

func TestReconcile_Coercion(t *testing.T) {
	tests := []struct {
		name     string
		orig     Value
		text     string
		want     Value
		warnings int
	}{
		{"int parses", Int(42), "7", Int(7), 0},
		{"int trims", Int(42), " 8 ", Int(8), 0},
		{"int fallback", Int(42), "abc", String("abc"), 0},
		{"int rejects float text", Int(42), "7.5", String("7.5"), 0},
		{"float parses", Float(0.5), "1.25", Float(1.25), 0},
		{"float accepts int text", Float(0.5), "3", Float(3), 0},
		{"float fallback", Float(0.5), "x", String("x"), 0},
		{"float rejects inf", Float(0.5), "inf", String("inf"), 0},
		{"bool true", Bool(false), "TRUE", Bool(true), 0},
		{"bool one", Bool(false), "1", Bool(true), 0},
		{"bool yes", Bool(false), "Yes", Bool(true), 0},
		{"bool other", Bool(true), "nope", Bool(false), 0},
		{"null empty", Null(), "", Null(), 0},
		{"null literal", Null(), "NULL", Null(), 0},
		{"null text", Null(), "pending", String("pending"), 0},
		{"string verbatim", String("a"), "  b  ", String("  b  "), 0},
		{"list parses", Strings("a", "b"), `["x","y","z"]`, Strings("x", "y", "z"), 0},
		{"list may change shape", Strings("a"), `{"k":1}`, Map(NewRecord(F("k", Int(1)))), 0},
		{"list malformed", Strings("a", "b"), `[1,2`, String(`[1,2`), 1},
		{"map parses", Map(NewRecord()), `{"a":[1]}`, Map(NewRecord(F("a", List(Int(1))))), 0},
		{"map malformed", Map(NewRecord()), `{a}`, String(`{a}`), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewRecord(F("f", tc.orig))
			form := BuildForm(rec)
			require.True(t, form.Set("f", tc.text))

			got := Reconcile(rec, form)
			v, _ := got.Record.Get("f")
			assert.True(t, v.Equal(tc.want), "got %s want %s", v, tc.want)
			assert.Len(t, got.Warnings, tc.warnings)
		})
	}
}

func TestReconcile_WarningDetails(t *testing.T) {
	rec := NewRecord(F("tags", Strings("a")))
	form := BuildForm(rec)
	form.Set("tags", "[1,2")

	got := Reconcile(rec, form)
	require.Len(t, got.Warnings, 1)
	w := got.Warnings[0]
	assert.Equal(t, "tags", w.Field)
	assert.Equal(t, "[1,2", w.Text)
	assert.Error(t, w.Err)
	assert.Contains(t, w.Error(), `"tags"`)
}

func TestReconcile_ListSplitFallback(t *testing.T) {
	rec := NewRecord(F("tags", Strings("new", "draft")), F("meta", Map(NewRecord())))
	form := BuildForm(rec)
	form.Set("tags", "go, tooling, ,editor")
	form.Set("meta", "not json")

	got := Reconcile(rec, form, WithListSplitFallback())
	tags, _ := got.Record.Get("tags")
	assert.True(t, tags.Equal(Strings("go", "tooling", "editor")), "got %s", tags)

	meta, _ := got.Record.Get("meta")
	assert.True(t, meta.Equal(String("not json")))
	assert.Len(t, got.Warnings, 1)
}

func TestReconcile_ForcesIDWhenNoControl(t *testing.T) {
	rec := NewRecord(F("id", String("B004")), F("title", String("T")))
	form := BuildForm(rec, "id")
	form.Set("title", "New")

	got := Reconcile(rec, form).Record
	assert.Equal(t, "B004", got.Text("id", ""))
	assert.Equal(t, "New", got.Text("title", ""))
}

func TestReconcile_DoesNotMutateOriginal(t *testing.T) {
	rec := sampleRecord()
	form := BuildForm(rec)
	form.Set("year", "1999")

	_ = Reconcile(rec, form)
	assert.Equal(t, "2027", rec.Text("year", ""))
}

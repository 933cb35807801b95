package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/editor"
	"github.com/aretw0/folio/pkg/render"
)

type memStore struct {
	records []core.Record
	saves   int
}

func (m *memStore) Load(ctx context.Context) ([]core.Record, error) {
	out := make([]core.Record, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *memStore) Save(ctx context.Context, records []core.Record) error {
	m.saves++
	m.records = records
	return nil
}

func newTestModel(t *testing.T) (*Model, *memStore, *memStore) {
	t.Helper()
	preds := &memStore{records: []core.Record{
		core.NewRecord(core.F("id", core.String("P001")), core.F("text", core.String("Rain"))),
	}}
	posts := &memStore{records: []core.Record{
		core.NewRecord(
			core.F("id", core.String("B001")),
			core.F("title", core.String("Hello")),
			core.F("content", core.String("# Hello")),
		),
	}}
	shell := editor.NewShell(
		editor.NewSession(core.Predictions, preds),
		editor.NewSession(core.BlogPosts, posts),
	)

	m := New(context.Background(), shell, Config{
		Style:      render.StyleNoTTY,
		ExportPath: filepath.Join(t.TempDir(), "preview.html"),
	})
	m.Update(m.Init()())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, preds, posts
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestModel_LoadFillsLists(t *testing.T) {
	m, _, _ := newTestModel(t)
	require.Len(t, m.tabs, 2)
	assert.Len(t, m.tabs[0].list.Items(), 1)
	assert.Equal(t, "P001: Rain...", m.tabs[0].list.Items()[0].(recordItem).label)
	assert.Contains(t, m.View(), "Predictions")
}

func TestModel_SelectEditSave(t *testing.T) {
	m, preds, _ := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	s := m.tabs[0].session
	assert.Equal(t, editor.State{Kind: editor.Editing, Index: 0}, s.Selection())
	require.Len(t, m.tabs[0].fields, 2)

	// focus moves list -> id -> text
	press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.tabs[0].focus)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, 1, preds.saves)
	assert.Contains(t, preds.records[0].Text("text", ""), "!")
	require.NotNil(t, m.notice)
	assert.Equal(t, editor.LevelInfo, m.notice.Level)
}

func TestModel_UneditedSaveKeepsExactText(t *testing.T) {
	m, _, posts := newTestModel(t)
	orig := core.NewRecord(
		core.F("id", core.String("B001")),
		core.F("title", core.String("Hi\tthere")),
		core.F("notes", core.String("line1\n\tindented")),
		core.F("content", core.String("```go\n\tprintln()\n```\r\nend")),
	)
	posts.records = []core.Record{orig.Clone()}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlRight}, tea.KeyMsg{Type: tea.KeyCtrlR})

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, editor.Editing, m.tabs[1].session.Selection().Kind)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, 1, posts.saves)
	for _, field := range orig.Keys() {
		want, _ := orig.Get(field)
		got, _ := posts.records[0].Get(field)
		assert.True(t, want.Equal(got), "field %s: %q -> %q", field, want.Text(), got.Text())
	}
}

func TestModel_TypedThenRevertedBodyKeepsExactText(t *testing.T) {
	m, _, posts := newTestModel(t)
	body := "a\tb\r\nc"
	posts.records = []core.Record{core.NewRecord(
		core.F("id", core.String("B001")),
		core.F("content", core.String(body)),
	)}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlRight}, tea.KeyMsg{Type: tea.KeyCtrlR}, tea.KeyMsg{Type: tea.KeyEnter})

	tb := m.tabs[1]
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, len(tb.fields)+1, tb.focus)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, body, tb.session.Body())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, body, posts.records[0].Text("content", ""))
}

func TestModel_SaveWithoutSelection(t *testing.T) {
	m, preds, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, 0, preds.saves)
	require.NotNil(t, m.notice)
	assert.Equal(t, "No Prediction Selected", m.notice.Title)
}

func TestModel_NewOnPredictionsFails(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlN})

	require.NotNil(t, m.notice)
	assert.Equal(t, editor.LevelError, m.notice.Level)
}

func TestModel_SwitchTabsAndCreatePost(t *testing.T) {
	m, _, posts := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlRight})
	assert.Equal(t, 1, m.active)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlLeft})
	assert.Equal(t, 0, m.active)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlLeft})
	assert.Equal(t, 1, m.active, "switching wraps around")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	tb := m.tabs[1]
	assert.Equal(t, editor.EditingNew, tb.session.Selection().Kind)
	assert.Equal(t, tb.session.Body(), tb.body.Value())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, posts.records, 2)
	assert.Equal(t, "B002", posts.records[1].Text("id", ""))
	assert.Len(t, tb.list.Items(), 2)
}

func TestModel_BodyTypingDebouncesPreview(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlRight}, tea.KeyMsg{Type: tea.KeyEnter})

	tb := m.tabs[1]
	// list -> id -> title -> body
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(tb.fields)+1, tb.focus)

	seq := tb.previewSeq
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, seq+1, tb.previewSeq)
	assert.Contains(t, tb.session.Body(), "x")

	_, cmd := m.Update(previewTickMsg{tab: 1, seq: seq})
	assert.Nil(t, cmd, "stale ticks are dropped")

	_, cmd = m.Update(previewTickMsg{tab: 1, seq: tb.previewSeq})
	require.NotNil(t, cmd)
	msg := cmd()
	pm, ok := msg.(previewMsg)
	require.True(t, ok)
	assert.Contains(t, pm.content, "Hello")

	m.Update(pm)
	assert.Contains(t, tb.preview.View(), "Hello")
}

func TestModel_Export(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlRight})

	press(m, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, m.notice)
	assert.Equal(t, "Nothing To Export", m.notice.Title)

	press(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, "Preview Exported", m.notice.Title)

	page, err := os.ReadFile(m.config.ExportPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Hello</h1>")
	assert.Contains(t, string(page), "<title>Hello</title>")
	assert.True(t, strings.Contains(string(page), "script-src 'none'"))
}

func TestModel_ExternalChange(t *testing.T) {
	m, preds, _ := newTestModel(t)

	m.Update(fileChangedMsg{tab: 0, event: core.Event{Type: core.EventModify}})
	assert.True(t, m.tabs[0].stale)
	assert.Equal(t, editor.LevelWarning, m.notice.Level)
	assert.Contains(t, m.View(), "Predictions*")

	preds.records = append(preds.records, core.NewRecord(core.F("id", core.String("P002"))))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.False(t, m.tabs[0].stale)
	assert.Len(t, m.tabs[0].list.Items(), 2)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

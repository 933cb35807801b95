// Package tui is the terminal presentation adapter for the editor shell.
//
// It turns key presses into editor actions and redraws from the returned
// updates. All state lives in pkg/editor; this package only owns widgets.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/editor"
	"github.com/aretw0/folio/pkg/render"
)

// DefaultPreviewDebounce delays preview re-renders while typing.
const DefaultPreviewDebounce = 150 * time.Millisecond

// Config configures the model.
type Config struct {
	PreviewDebounce time.Duration
	ExportPath      string // ctrl+e target, defaults to folio-preview.html
	Style           string // glamour style, see render.Style*
	Watch           bool   // report external file changes
	Logger          *slog.Logger
}

type (
	loadedMsg      struct{ update editor.Update }
	previewTickMsg struct{ tab, seq int }
	previewMsg     struct {
		tab, seq int
		content  string
		err      error
	}
	fileChangedMsg struct {
		tab   int
		event core.Event
	}
)

// recordItem adapts a list label to list.Item.
type recordItem struct {
	index int
	label string
}

func (i recordItem) Title() string       { return i.label }
func (i recordItem) Description() string { return "" }
func (i recordItem) FilterValue() string { return i.label }

// tab is the widget set for one session.
type tab struct {
	session *editor.Session
	list    list.Model
	fields  []*fieldInput
	body    textarea.Model
	preview viewport.Model
	hasBody bool
	// bodyBase is the textarea value right after bodyOrig was loaded into it.
	bodyBase string
	bodyOrig string

	focus      int // 0 list, 1..len(fields) fields, len(fields)+1 body
	previewSeq int
	stale      bool
	watch      <-chan core.Event
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	shell  *editor.Shell
	config Config
	logger *slog.Logger
	styles Styles
	term   *render.Terminal

	tabs   []*tab
	active int
	width  int
	height int
	notice *editor.Notice
}

// New builds the model. Collections are loaded by Init.
func New(ctx context.Context, shell *editor.Shell, config Config) *Model {
	if config.PreviewDebounce <= 0 {
		config.PreviewDebounce = DefaultPreviewDebounce
	}
	if config.ExportPath == "" {
		config.ExportPath = "folio-preview.html"
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Model{
		ctx:    ctx,
		shell:  shell,
		config: config,
		logger: config.Logger,
		styles: DefaultStyles(),
		term:   render.NewTerminal(config.Style),
	}
	for _, s := range shell.Sessions() {
		m.tabs = append(m.tabs, newTab(s))
	}
	return m
}

func newTab(s *editor.Session) *tab {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = s.Kind().Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	body := textarea.New()
	body.CharLimit = 0
	body.ShowLineNumbers = false

	return &tab{
		session: s,
		list:    l,
		body:    body,
		preview: viewport.New(0, 0),
		hasBody: s.Kind().BodyField != "",
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, shell *editor.Shell, config Config) error {
	p := tea.NewProgram(New(ctx, shell, config), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		u, _ := m.shell.Load(m.ctx)
		return loadedMsg{update: u}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case loadedMsg:
		for _, n := range msg.update.Notices {
			m.logNotice(n)
			m.setNotice(n)
		}
		var cmds []tea.Cmd
		for i := range m.tabs {
			cmds = append(cmds, m.syncTab(i, msg.update))
			if m.config.Watch {
				cmds = append(cmds, m.startWatch(i))
			}
		}
		return m, tea.Batch(cmds...)

	case previewTickMsg:
		t := m.tabs[msg.tab]
		if msg.seq != t.previewSeq {
			return m, nil
		}
		return m, m.renderPreview(msg.tab)

	case previewMsg:
		t := m.tabs[msg.tab]
		if msg.seq != t.previewSeq {
			return m, nil
		}
		if msg.err != nil {
			t.preview.SetContent(msg.err.Error())
		} else {
			t.preview.SetContent(msg.content)
		}
		return m, nil

	case fileChangedMsg:
		t := m.tabs[msg.tab]
		t.stale = true
		m.logger.Info("collection changed on disk", "kind", t.session.Kind().Name, "event", msg.event.String())
		m.setNotice(editor.Notice{
			Level:   editor.LevelWarning,
			Title:   t.session.Kind().Title + " Changed",
			Message: "The file changed on disk. Press ctrl+r to reload.",
		})
		return m, m.waitForChange(msg.tab)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.tabs[m.active]

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+left":
		return m, m.switchTab(m.active - 1)

	case "ctrl+right":
		return m, m.switchTab(m.active + 1)

	case "tab":
		return m, m.moveFocus(1)

	case "shift+tab":
		return m, m.moveFocus(-1)

	case "ctrl+s":
		m.flush(t)
		return m, m.dispatch(editor.Save{})

	case "ctrl+n":
		return m, m.dispatch(editor.New{})

	case "ctrl+r":
		t.stale = false
		return m, m.dispatch(editor.Reload{})

	case "ctrl+e":
		m.export(t)
		return m, nil

	case "enter":
		if t.focus == 0 {
			if item, ok := t.list.SelectedItem().(recordItem); ok {
				return m, m.dispatch(editor.Select{Index: item.index})
			}
			return m, nil
		}
	}

	return m, m.forward(t, msg)
}

// forward sends a key to the focused widget.
func (m *Model) forward(t *tab, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case t.focus == 0:
		t.list, cmd = t.list.Update(msg)
	case t.focus <= len(t.fields):
		cmd = t.fields[t.focus-1].Update(msg)
	case t.hasBody:
		before := t.body.Value()
		t.body, cmd = t.body.Update(msg)
		if after := t.body.Value(); after != before {
			text := after
			if after == t.bodyBase {
				text = t.bodyOrig
			}
			u := t.session.Dispatch(m.ctx, editor.EditBody{Text: text})
			if u.BodyChanged {
				return tea.Batch(cmd, m.schedulePreview(m.active))
			}
		}
	}
	return cmd
}

// flush pushes edited widget values into the session before saving.
// Untouched widgets are skipped so the session keeps the exact stored text.
func (m *Model) flush(t *tab) {
	for _, f := range t.fields {
		if f.Edited() {
			t.session.Dispatch(m.ctx, editor.EditField{Field: f.field, Text: f.Value()})
		}
	}
	if t.hasBody && t.body.Value() != t.bodyBase {
		t.session.Dispatch(m.ctx, editor.EditBody{Text: t.body.Value()})
	}
}

func (m *Model) dispatch(a editor.Action) tea.Cmd {
	u := m.tabs[m.active].session.Dispatch(m.ctx, a)
	return m.apply(m.active, u)
}

// apply redraws tab i from an update and shows its most severe notice.
func (m *Model) apply(i int, u editor.Update) tea.Cmd {
	var shown *editor.Notice
	for j, n := range u.Notices {
		m.logNotice(n)
		if shown == nil || n.Level >= shown.Level {
			shown = &u.Notices[j]
		}
	}
	if shown != nil {
		m.setNotice(*shown)
	}
	return m.syncTab(i, u)
}

func (m *Model) syncTab(i int, u editor.Update) tea.Cmd {
	t := m.tabs[i]
	s := t.session
	var cmds []tea.Cmd

	if u.ListChanged || u.FormChanged {
		labels := s.Labels()
		items := make([]list.Item, len(labels))
		for j, l := range labels {
			items[j] = recordItem{index: j, label: l}
		}
		cmds = append(cmds, t.list.SetItems(items))
		if sel := s.Selection(); sel.Kind == editor.Editing {
			t.list.Select(sel.Index)
		}
	}

	if u.FormChanged {
		t.fields = newFieldInputs(s.Form())
		if t.focus > len(t.fields)+1 || (t.focus == len(t.fields)+1 && !t.hasBody) {
			t.focus = 0
		}
		m.layoutTab(t)
		m.applyFocus(t)
	}

	if u.BodyChanged && t.hasBody {
		if t.body.Value() != s.Body() {
			t.body.SetValue(s.Body())
		}
		t.bodyBase, t.bodyOrig = t.body.Value(), s.Body()
		// Selection changes render at once; typing goes through the debounce.
		t.previewSeq++
		cmds = append(cmds, m.renderPreview(i))
	}

	return tea.Batch(cmds...)
}

func (m *Model) schedulePreview(i int) tea.Cmd {
	t := m.tabs[i]
	t.previewSeq++
	seq := t.previewSeq
	return tea.Tick(m.config.PreviewDebounce, func(time.Time) tea.Msg {
		return previewTickMsg{tab: i, seq: seq}
	})
}

func (m *Model) renderPreview(i int) tea.Cmd {
	t := m.tabs[i]
	seq, src, width := t.previewSeq, t.body.Value(), t.preview.Width
	return func() tea.Msg {
		out, err := m.term.Render(src, width)
		return previewMsg{tab: i, seq: seq, content: out, err: err}
	}
}

func (m *Model) startWatch(i int) tea.Cmd {
	t := m.tabs[i]
	ch, err := t.session.Watch(m.ctx)
	if err != nil {
		m.logger.Error("watch failed", "kind", t.session.Kind().Name, "error", err)
		return nil
	}
	t.watch = ch
	return m.waitForChange(i)
}

func (m *Model) waitForChange(i int) tea.Cmd {
	ch := m.tabs[i].watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{tab: i, event: e}
	}
}

func (m *Model) export(t *tab) {
	if !t.hasBody || t.session.Selection().Kind == editor.NoSelection {
		m.setNotice(editor.Notice{Level: editor.LevelWarning, Title: "Nothing To Export", Message: "Select a post first."})
		return
	}
	title := "Preview"
	if f := t.session.Form(); f != nil {
		if v, ok := f.Text("title"); ok && v != "" {
			title = v
		}
	}
	page, err := render.Document(title, t.body.Value())
	if err == nil {
		err = os.WriteFile(m.config.ExportPath, []byte(page), 0644)
	}
	if err != nil {
		m.logger.Error("export failed", "path", m.config.ExportPath, "error", err)
		m.setNotice(editor.Notice{Level: editor.LevelError, Title: "Export Failed", Message: err.Error()})
		return
	}
	m.setNotice(editor.Notice{Level: editor.LevelInfo, Title: "Preview Exported", Message: m.config.ExportPath})
}

func (m *Model) switchTab(i int) tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	m.active = (i + len(m.tabs)) % len(m.tabs)
	return m.applyFocus(m.tabs[m.active])
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	t := m.tabs[m.active]
	n := len(t.fields) + 1
	if t.hasBody && t.session.Selection().Kind != editor.NoSelection {
		n++
	}
	t.focus = ((t.focus+delta)%n + n) % n
	return m.applyFocus(t)
}

func (m *Model) applyFocus(t *tab) tea.Cmd {
	for _, f := range t.fields {
		f.Blur()
	}
	t.body.Blur()
	switch {
	case t.focus == 0:
		return nil
	case t.focus <= len(t.fields):
		return t.fields[t.focus-1].Focus()
	default:
		return t.body.Focus()
	}
}

func (m *Model) setNotice(n editor.Notice) {
	m.notice = &n
}

func (m *Model) logNotice(n editor.Notice) {
	switch n.Level {
	case editor.LevelError:
		m.logger.Error(n.Title, "message", n.Message)
	case editor.LevelWarning:
		m.logger.Warn(n.Title, "message", n.Message)
	default:
		m.logger.Debug(n.Title, "message", n.Message)
	}
}

// layout sizes every widget for the current window.
func (m *Model) layout() {
	for _, t := range m.tabs {
		m.layoutTab(t)
	}
}

func (m *Model) paneSizes() (listW, rightW, bodyH int) {
	listW = max(24, m.width/3)
	rightW = max(20, m.width-listW-4)
	bodyH = max(5, m.height/2-4)
	return
}

func (m *Model) layoutTab(t *tab) {
	if m.width == 0 {
		return
	}
	listW, rightW, bodyH := m.paneSizes()
	t.list.SetSize(listW-2, max(5, m.height-6))
	for _, f := range t.fields {
		f.SetWidth(rightW - 4)
	}
	half := max(10, rightW/2-3)
	t.body.SetWidth(half)
	t.body.SetHeight(bodyH)
	t.preview.Width = half
	t.preview.Height = bodyH
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.tabs) == 0 {
		return ""
	}
	t := m.tabs[m.active]

	var tabs []string
	for i, tb := range m.tabs {
		title := tb.session.Kind().Title
		if tb.stale {
			title += "*"
		}
		if i == m.active {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(title))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	listStyle := m.styles.Pane
	if t.focus == 0 {
		listStyle = m.styles.Focused
	}
	left := listStyle.Render(t.list.View())

	right := m.formView(t)
	if t.hasBody && t.session.Selection().Kind != editor.NoSelection {
		bodyStyle := m.styles.Pane
		if t.focus == len(t.fields)+1 {
			bodyStyle = m.styles.Focused
		}
		right = lipgloss.JoinVertical(lipgloss.Left,
			right,
			lipgloss.JoinHorizontal(lipgloss.Top,
				bodyStyle.Render(t.body.View()),
				m.styles.Pane.Render(t.preview.View()),
			),
		)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.statusView())
}

func (m *Model) formView(t *tab) string {
	if t.session.Selection().Kind == editor.NoSelection {
		return m.styles.Pane.Render(m.styles.Help.Render("Select a record and press enter."))
	}

	_, _, bodyH := m.paneSizes()
	budget := max(4, m.height-8)
	if t.hasBody {
		budget = max(4, m.height-bodyH-10)
	}

	// Keep the focused field in view.
	start := 0
	if t.focus > 0 {
		start = max(0, t.focus-1-2)
	}

	var lines []string
	used := 0
	for i := start; i < len(t.fields); i++ {
		f := t.fields[i]
		label := m.styles.Label.Render(f.label)
		block := lipgloss.JoinVertical(lipgloss.Left, label, f.View())
		h := lipgloss.Height(block)
		if used+h > budget && len(lines) > 0 {
			lines = append(lines, m.styles.Help.Render(fmt.Sprintf("... %d more", len(t.fields)-i)))
			break
		}
		lines = append(lines, block)
		used += h
	}

	style := m.styles.Pane
	if t.focus > 0 && t.focus <= len(t.fields) {
		style = m.styles.Focused
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) statusView() string {
	help := m.styles.Help.Render("tab focus · enter select · ctrl+s save · ctrl+n new · ctrl+r reload · ctrl+e export · ctrl+←/→ switch · ctrl+c quit")
	if m.notice == nil {
		return help
	}
	n := m.notice
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.noticeStyle(n.Level).Render(n.String()),
		help,
	)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/folio/pkg/core"
)

const maxAreaHeight = 6

// fieldInput is the widget for one form control: a textinput for single-line
// controls, a textarea for multi-line ones.
//
// The widgets rewrite some runes on SetValue (tabs, carriage returns), so
// baseline holds what the widget showed before any key press. Only a value
// that moved away from it counts as an edit.
type fieldInput struct {
	field    string
	label    string
	multi    bool
	input    textinput.Model
	area     textarea.Model
	baseline string
}

func newFieldInput(c core.Control) *fieldInput {
	f := &fieldInput{field: c.Field, label: c.Label, multi: c.Kind == core.MultiLine}
	if f.multi {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.Prompt = ""
		ta.SetValue(c.Text)
		ta.SetHeight(min(maxAreaHeight, strings.Count(c.Text, "\n")+1))
		f.area = ta
		f.baseline = ta.Value()
		return f
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(c.Text)
	f.input = ti
	f.baseline = ti.Value()
	return f
}

func newFieldInputs(form *core.Form) []*fieldInput {
	if form == nil {
		return nil
	}
	controls := form.Controls()
	out := make([]*fieldInput, len(controls))
	for i, c := range controls {
		out[i] = newFieldInput(c)
	}
	return out
}

func (f *fieldInput) Value() string {
	if f.multi {
		return f.area.Value()
	}
	return f.input.Value()
}

// Edited reports whether the user changed the value.
func (f *fieldInput) Edited() bool { return f.Value() != f.baseline }

func (f *fieldInput) Focus() tea.Cmd {
	if f.multi {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *fieldInput) Blur() {
	if f.multi {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *fieldInput) SetWidth(w int) {
	if f.multi {
		f.area.SetWidth(w)
		return
	}
	f.input.Width = w
}

func (f *fieldInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.multi {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *fieldInput) View() string {
	if f.multi {
		return f.area.View()
	}
	return f.input.View()
}

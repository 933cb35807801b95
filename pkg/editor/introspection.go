package editor

import (
	"time"

	"github.com/aretw0/introspection"
)

// SessionState exposes internal state for observability.
type SessionState struct {
	Kind      string     `json:"kind"`
	Records   int        `json:"records"`
	Selection string     `json:"selection"`
	Dirty     bool       `json:"dirty"`
	LoadError string     `json:"load_error,omitempty"`
	LastSave  *time.Time `json:"last_save,omitempty"`
	Store     any        `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := SessionState{
		Kind:      s.kind.Name,
		Records:   s.coll.Len(),
		Selection: s.state.String(),
		Dirty:     s.form != nil && (s.form.Dirty() || s.body != s.kind.Body(s.draft)),
		LastSave:  s.lastSave,
	}
	if s.loadErr != nil {
		st.LoadError = s.loadErr.Error()
	}
	if in, ok := s.store.(introspection.Introspectable); ok {
		st.Store = in.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "editor-session"
}

// ShellState aggregates every session.
type ShellState struct {
	Sessions []SessionState `json:"sessions"`
}

// State implements introspection.Introspectable.
func (sh *Shell) State() any {
	out := ShellState{Sessions: make([]SessionState, 0, len(sh.sessions))}
	for _, s := range sh.sessions {
		out.Sessions = append(out.Sessions, s.State().(SessionState))
	}
	return out
}

// ComponentType implements introspection.Component.
func (sh *Shell) ComponentType() string {
	return "editor-shell"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
var _ introspection.Introspectable = (*Shell)(nil)
var _ introspection.Component = (*Shell)(nil)

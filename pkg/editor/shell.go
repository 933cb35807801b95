package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/folio/pkg/core"
)

// Shell owns one independent Session per collection kind.
type Shell struct {
	sessions []*Session
}

// NewShell groups sessions in display order.
func NewShell(sessions ...*Session) *Shell {
	return &Shell{sessions: sessions}
}

// Sessions returns the sessions in display order.
func (sh *Shell) Sessions() []*Session {
	return append([]*Session(nil), sh.sessions...)
}

// Session returns the session for a kind name or alias.
func (sh *Shell) Session(name string) (*Session, bool) {
	k, ok := core.KindByName(name)
	if !ok {
		return nil, false
	}
	for _, s := range sh.sessions {
		if s.kind.Name == k.Name {
			return s, true
		}
	}
	return nil, false
}

// Load loads every collection. A failing kind is reported as an error notice
// and left empty; the others still load. The returned error joins every
// *LoadError.
func (sh *Shell) Load(ctx context.Context) (Update, error) {
	var u Update
	var errs []error
	for _, s := range sh.sessions {
		if err := s.Load(ctx); err != nil {
			le := &LoadError{Kind: s.kind, Err: err}
			u.fail("Error Loading "+s.kind.Title, fmt.Sprintf("Could not load data: %v", err), le)
			errs = append(errs, le)
		}
	}
	u.ListChanged, u.FormChanged, u.BodyChanged = true, true, true
	return u, errors.Join(errs...)
}

// LoadError is a per-kind load failure reported by Shell.Load.
type LoadError struct {
	Kind core.Kind
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Kind.Name, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Package editor holds the presentation-agnostic editing state machine.
//
// A Session edits one collection. It moves between three states:
//
//	NoSelection --Select--> Editing(i) --Save--> Editing(i)
//	     |                      ^
//	     +------New-----> EditingNew --Save--> Editing(len-1)
//
// Presentation adapters translate widget events into Actions, call Dispatch
// and redraw according to the returned Update.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

// StateKind names the selection state of a Session.
type StateKind int

const (
	NoSelection StateKind = iota
	Editing
	EditingNew
)

func (k StateKind) String() string {
	switch k {
	case Editing:
		return "editing"
	case EditingNew:
		return "editing-new"
	default:
		return "no-selection"
	}
}

// State is the current selection. Index is only meaningful for Editing.
type State struct {
	Kind  StateKind
	Index int
}

func (s State) String() string {
	if s.Kind == Editing {
		return fmt.Sprintf("editing(%d)", s.Index)
	}
	return s.Kind.String()
}

// Session edits one collection.
type Session struct {
	kind   core.Kind
	store  core.Store
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	coll     *core.Collection
	state    State
	draft    core.Record // record the form was built from
	form     *core.Form
	body     string
	loadErr  error
	lastSave *time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for new record templates.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates an empty session. Call Load before use.
func NewSession(kind core.Kind, store core.Store, opts ...SessionOption) *Session {
	s := &Session{
		kind:   kind,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		coll:   core.NewCollection(kind, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("kind", kind.Name)
	return s
}

// Kind returns the collection kind.
func (s *Session) Kind() core.Kind { return s.kind }

// Store returns the backing store.
func (s *Session) Store() core.Store { return s.store }

// Selection returns the current state.
func (s *Session) Selection() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Form returns the form being edited, or nil in NoSelection.
func (s *Session) Form() *core.Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// Body returns the markdown body being edited.
func (s *Session) Body() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.body
}

// Labels returns the list labels in collection order.
func (s *Session) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Labels()
}

// Records returns a copy of the in-memory collection.
func (s *Session) Records() []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.coll.Records()
	out := make([]core.Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}

// Load reads the collection. On failure the collection is left empty and the
// error is returned; the session stays usable.
func (s *Session) Load(ctx context.Context) error {
	records, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelection()
	s.loadErr = err
	if err != nil {
		s.coll.Reset(nil)
		s.logger.Error("load failed", "error", err)
		return err
	}
	s.coll.Reset(records)
	s.logger.Debug("loaded", "records", len(records))
	return nil
}

// Watch forwards change events from the store, if it supports them.
// A nil channel means the store cannot be watched.
func (s *Session) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := s.store.(core.Watchable)
	if !ok {
		return nil, nil
	}
	return w.Watch(ctx)
}

// Dispatch applies one action.
func (s *Session) Dispatch(ctx context.Context, a Action) Update {
	switch a := a.(type) {
	case Select:
		return s.selectRecord(a.Index)
	case New:
		return s.newRecord()
	case EditField:
		return s.editField(a.Field, a.Text)
	case EditBody:
		return s.editBody(a.Text)
	case Save:
		return s.save(ctx)
	case Reload:
		return s.reload(ctx)
	default:
		var u Update
		u.fail("Unsupported Action", fmt.Sprintf("%T", a), fmt.Errorf("unsupported action %T", a))
		return u
	}
}

func (s *Session) selectRecord(i int) Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u Update
	rec, err := s.coll.At(i)
	if err != nil {
		u.fail("Invalid Selection", err.Error(), err)
		return u
	}
	s.state = State{Kind: Editing, Index: i}
	s.edit(rec)
	u.FormChanged, u.BodyChanged = true, true
	return u
}

func (s *Session) newRecord() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u Update
	tpl, err := s.kind.NewTemplate(s.coll.Records(), s.now())
	if err != nil {
		u.fail("Not Supported", err.Error(), err)
		return u
	}
	s.state = State{Kind: EditingNew}
	s.edit(tpl)
	id, _ := tpl.ID()
	u.info("New "+s.kind.Singular, fmt.Sprintf("Editing new %s. ID will be '%s'. Fill details and save.", strings.ToLower(s.kind.Singular), id))
	u.ListChanged, u.FormChanged, u.BodyChanged = true, true, true
	return u
}

func (s *Session) editField(field, text string) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form != nil {
		s.form.Set(field, text)
	}
	return Update{}
}

func (s *Session) editBody(text string) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kind.BodyField == "" || s.state.Kind == NoSelection {
		return Update{}
	}
	s.body = text
	return Update{BodyChanged: true}
}

func (s *Session) save(ctx context.Context) Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.Kind {
	case Editing:
		return s.saveExisting(ctx)
	case EditingNew:
		return s.saveNew(ctx)
	default:
		var u Update
		u.warn(fmt.Sprintf("No %s Selected", s.kind.Singular),
			fmt.Sprintf("Please select a %s to save.", strings.ToLower(s.kind.Singular)),
			core.ErrNothingSelected)
		return u
	}
}

func (s *Session) saveExisting(ctx context.Context) Update {
	var u Update
	i := s.state.Index
	orig, err := s.coll.At(i)
	if err != nil {
		u.fail("Invalid Selection", err.Error(), err)
		return u
	}

	rec := s.reconcile(&u, orig)
	// The in-memory change stays applied even when persisting fails.
	if err := s.coll.Replace(i, rec); err != nil {
		u.fail("Invalid Selection", err.Error(), err)
		return u
	}
	id, _ := rec.ID()
	s.persist(ctx, &u, fmt.Sprintf("docs(%s): update %s", s.kind.Name, id))

	s.edit(rec)
	u.ListChanged, u.FormChanged = true, true
	return u
}

func (s *Session) saveNew(ctx context.Context) Update {
	var u Update
	rec := s.reconcile(&u, s.draft, core.WithListSplitFallback())

	id, ok := rec.ID()
	if !ok || strings.TrimSpace(id) == "" {
		u.fail("Error", fmt.Sprintf("Could not determine ID for new %s.", strings.ToLower(s.kind.Singular)), core.ErrMissingID)
		return u
	}
	if s.coll.HasID(id) {
		u.warn("Duplicate ID",
			fmt.Sprintf("A %s with ID '%s' already exists. Please change the ID.", strings.ToLower(s.kind.Singular), id),
			fmt.Errorf("%s: %w", id, core.ErrDuplicateID))
		return u
	}

	idx := s.coll.Append(rec)
	saved := s.persist(ctx, &u, fmt.Sprintf("feat(%s): add %s", s.kind.Name, id))

	s.state = State{Kind: Editing, Index: idx}
	s.edit(rec)
	if saved {
		u.info(s.kind.Singular+" Saved", fmt.Sprintf("New %s saved successfully.", strings.ToLower(s.kind.Singular)))
	}
	u.ListChanged, u.FormChanged = true, true
	return u
}

// reconcile merges the form and body into a copy of orig and reports
// coercion warnings.
func (s *Session) reconcile(u *Update, orig core.Record, opts ...core.ReconcileOption) core.Record {
	res := core.Reconcile(orig, s.form, opts...)
	for _, w := range res.Warnings {
		s.logger.Warn("field kept as text", "field", w.Field, "error", w.Err)
		u.Notices = append(u.Notices, Notice{Level: LevelWarning, Title: "Field Kept As Text", Message: w.Error()})
	}
	rec := res.Record
	if s.kind.BodyField != "" {
		rec.Set(s.kind.BodyField, core.String(s.body))
	}
	return rec
}

// persist writes the collection and reports whether it succeeded.
func (s *Session) persist(ctx context.Context, u *Update, reason string) bool {
	ctx = context.WithValue(ctx, core.ChangeReasonKey, reason)
	if err := s.store.Save(ctx, s.coll.Records()); err != nil {
		s.logger.Error("save failed", "error", err)
		u.fail("Error Saving "+s.kind.Title, fmt.Sprintf("Could not save data: %v", err), err)
		return false
	}
	now := s.now()
	s.lastSave = &now
	s.logger.Info("saved", "records", s.coll.Len(), "reason", reason)
	u.info(s.kind.Title+" Saved", s.kind.Title+" data saved successfully.")
	return true
}

func (s *Session) reload(ctx context.Context) Update {
	var u Update
	u.ListChanged, u.FormChanged, u.BodyChanged = true, true, true
	if err := s.Load(ctx); err != nil {
		u.fail("Error Loading "+s.kind.Title, fmt.Sprintf("Could not load data: %v", err), err)
		return u
	}
	u.info(s.kind.Title+" Reloaded", fmt.Sprintf("%d records loaded.", s.Len()))
	return u
}

// Len returns the number of records.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coll.Len()
}

// edit makes rec the record under edit. Caller holds mu.
func (s *Session) edit(rec core.Record) {
	s.draft = rec
	s.form = core.BuildForm(rec, s.kind.Excluded()...)
	s.body = s.kind.Body(rec)
}

// clearSelection drops the form. Caller holds mu.
func (s *Session) clearSelection() {
	s.state = State{Kind: NoSelection}
	s.draft = core.Record{}
	s.form = nil
	s.body = ""
}

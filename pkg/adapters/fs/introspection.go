package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string     `json:"path"`
	LockPath      string     `json:"lock_path"`
	Atomic        bool       `json:"atomic"`
	Versioning    bool       `json:"versioning"`
	WatcherActive bool       `json:"watcher_active"`
	LastLoad      *time.Time `json:"last_load,omitempty"`
	LastSave      *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (s *JSONStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:          s.Path,
		LockPath:      s.config.LockPath,
		Atomic:        s.config.Atomic,
		Versioning:    s.git != nil,
		WatcherActive: s.watcherActive,
		LastLoad:      s.lastLoad,
		LastSave:      s.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (s *JSONStore) ComponentType() string {
	return "json-store"
}

var _ introspection.Introspectable = (*JSONStore)(nil)
var _ introspection.Component = (*JSONStore)(nil)

func (s *JSONStore) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

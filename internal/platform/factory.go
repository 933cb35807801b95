package platform

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/editor"
)

// Workspace is a resolved project: its root, effective configuration and
// the editor shell wired to its collection files.
type Workspace struct {
	Root   string
	Config Config
	Shell  *editor.Shell
	Logger *slog.Logger
}

// Open resolves the project containing dir, reads folio.yaml, applies opts
// and wires one session per collection kind. Collections are not loaded yet.
//
//	ws, err := platform.Open(".", platform.WithAtomic(true))
func Open(dir string, opts ...Option) (*Workspace, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	root, err := FindRoot(dir)
	if err != nil {
		// Without markers the directory itself is the root.
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}
		logger.Debug("no project root found, using directory", "dir", abs)
		root = abs
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}
	o.apply(&cfg)

	ws := &Workspace{Root: root, Config: cfg, Logger: logger}

	var sessions []*editor.Session
	for _, kind := range core.Kinds() {
		store, ok := o.stores[kind.Name]
		if !ok {
			store = ws.newFileStore(ws.CollectionPath(kind))
		}
		sessions = append(sessions, editor.NewSession(kind, store,
			editor.WithLogger(logger),
			editor.WithClock(o.now),
		))
	}
	ws.Shell = editor.NewShell(sessions...)

	logger.Debug("workspace opened", "root", root,
		"predictions", ws.CollectionPath(core.Predictions),
		"blog_posts", ws.CollectionPath(core.BlogPosts))
	return ws, nil
}

// CollectionPath is the absolute file path of a kind's collection.
func (w *Workspace) CollectionPath(kind core.Kind) string {
	switch kind.Name {
	case core.Predictions.Name:
		return Resolve(w.Root, w.Config.Predictions)
	case core.BlogPosts.Name:
		return Resolve(w.Root, w.Config.BlogPosts)
	default:
		return ""
	}
}

// EnsureStateDir creates the state directory and returns its path.
func (w *Workspace) EnsureStateDir() (string, error) {
	dir := Resolve(w.Root, w.Config.StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create state dir: %w", err)
	}
	return dir, nil
}

func (w *Workspace) newFileStore(path string) *fs.JSONStore {
	lockPath := ""
	if dir, err := w.EnsureStateDir(); err == nil {
		lockPath = filepath.Join(dir, filepath.Base(path)+".lock")
	} else {
		w.Logger.Warn("state dir unavailable, locking next to the file", "error", err)
	}

	return fs.NewJSONStore(fs.Config{
		Path:       path,
		LockPath:   lockPath,
		Atomic:     w.Config.Atomic,
		Versioning: w.Config.Versioning,
		Logger:     w.Logger,
	})
}

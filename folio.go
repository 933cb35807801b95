package folio

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/core"
)

// --- Types ---

// Workspace is a resolved project with its editor shell.
type Workspace = platform.Workspace

// Config is the effective project configuration (folio.yaml plus options).
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring a workspace.
type Option = platform.Option

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithPredictionsFile overrides the predictions file path.
func WithPredictionsFile(path string) Option {
	return platform.WithPredictionsFile(path)
}

// WithBlogPostsFile overrides the blog posts file path.
func WithBlogPostsFile(path string) Option {
	return platform.WithBlogPostsFile(path)
}

// WithAtomic writes through a temp file and rename instead of in place.
func WithAtomic(enabled bool) Option {
	return platform.WithAtomic(enabled)
}

// WithVersioning commits every save when the files live in a git work tree.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithWatch enables or disables reporting of external file changes.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithStore injects a custom store for a collection kind.
func WithStore(kind string, store core.Store) Option {
	return platform.WithStore(kind, store)
}

// WithClock overrides the time source for new record templates.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Construction ---

// Open resolves the project containing dir and wires its collections.
// Nothing is read until Shell.Load.
func Open(dir string, opts ...Option) (*Workspace, error) {
	return platform.Open(dir, opts...)
}

// FindRoot looks upwards from dir for folio.yaml, src/data or .git.
func FindRoot(dir string) (string, error) {
	return platform.FindRoot(dir)
}

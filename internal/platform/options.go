package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

// options holds the overrides applied on top of folio.yaml.
type options struct {
	logger *slog.Logger
	config map[string]any
	stores map[string]core.Store
	now    func() time.Time
}

// Option defines a functional option for configuring a workspace.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		config: make(map[string]any),
		stores: make(map[string]core.Store),
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPredictionsFile overrides the predictions file path.
func WithPredictionsFile(path string) Option {
	return func(o *options) {
		o.config["predictions"] = path
	}
}

// WithBlogPostsFile overrides the blog posts file path.
func WithBlogPostsFile(path string) Option {
	return func(o *options) {
		o.config["blog_posts"] = path
	}
}

// WithAtomic writes through a temp file and rename instead of in place.
func WithAtomic(enabled bool) Option {
	return func(o *options) {
		o.config["atomic"] = enabled
	}
}

// WithVersioning commits every save when the files live in a git work tree.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioning"] = enabled
	}
}

// WithWatch enables or disables reporting of external file changes.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.config["watch"] = enabled
	}
}

// WithStore injects a store for a kind (e.g. an in-memory mock) instead of the JSON file.
func WithStore(kind string, store core.Store) Option {
	return func(o *options) {
		if k, ok := core.KindByName(kind); ok {
			o.stores[k.Name] = store
		}
	}
}

// WithClock overrides the time source for new record templates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// apply folds flag-level overrides into cfg.
func (o *options) apply(cfg *Config) {
	if v, ok := o.config["predictions"].(string); ok && v != "" {
		cfg.Predictions = v
	}
	if v, ok := o.config["blog_posts"].(string); ok && v != "" {
		cfg.BlogPosts = v
	}
	if v, ok := o.config["atomic"].(bool); ok {
		cfg.Atomic = v
	}
	if v, ok := o.config["versioning"].(bool); ok {
		cfg.Versioning = v
	}
	if v, ok := o.config["watch"].(bool); ok {
		cfg.Watch = &v
	}
}

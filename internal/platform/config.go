package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the project configuration, read from folio.yaml.
// Relative paths are resolved against the project root.
type Config struct {
	Predictions     string        `yaml:"predictions"`
	BlogPosts       string        `yaml:"blog_posts"`
	Atomic          bool          `yaml:"atomic"`
	Versioning      bool          `yaml:"versioning"`
	Watch           *bool         `yaml:"watch"`
	PreviewDebounce time.Duration `yaml:"preview_debounce"`
	PreviewFile     string        `yaml:"preview_file"`
	LogFile         string        `yaml:"log_file"`
	StateDir        string        `yaml:"state_dir"`
	Style           string        `yaml:"style"`
}

// DefaultConfig matches the layout of the site repository.
func DefaultConfig() Config {
	watch := true
	return Config{
		Predictions:     filepath.Join("src", "data", "predictions.json"),
		BlogPosts:       filepath.Join("src", "data", "blogPosts.json"),
		Watch:           &watch,
		PreviewDebounce: 150 * time.Millisecond,
		StateDir:        ".folio",
		PreviewFile:     "preview.html",
		LogFile:         "folio.log",
	}
}

// LoadConfig reads root/folio.yaml over the defaults. A missing file is not an error.
func LoadConfig(root string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	def := DefaultConfig()
	if cfg.Predictions == "" {
		cfg.Predictions = def.Predictions
	}
	if cfg.BlogPosts == "" {
		cfg.BlogPosts = def.BlogPosts
	}
	if cfg.StateDir == "" {
		cfg.StateDir = def.StateDir
	}
	if cfg.Watch == nil {
		cfg.Watch = def.Watch
	}
	if cfg.PreviewDebounce <= 0 {
		cfg.PreviewDebounce = def.PreviewDebounce
	}
	return cfg, nil
}

// WatchEnabled reports the effective watch setting.
func (c Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// Resolve returns path relative to root unless it is already absolute.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// StatePath resolves a file inside the state directory.
func (c Config) StatePath(root, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(Resolve(root, c.StateDir), name)
}

// Package fs stores collections as JSON array files on the local filesystem.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/git"
)

const (
	defaultLockTimeout = 3 * time.Second
	lockRetryInterval  = 50 * time.Millisecond
)

// Config holds the configuration for a JSON collection file.
type Config struct {
	Path        string
	LockPath    string        // defaults to Path + ".lock"
	LockTimeout time.Duration // defaults to 3s
	Atomic      bool          // write through a temp file and rename instead of truncating in place
	Versioning  bool          // commit each save when the file lives in a git work tree
	Logger      *slog.Logger
	Perm        os.FileMode // defaults to 0644 for new files
}

// JSONStore implements core.Store for one JSON array file.
type JSONStore struct {
	Path   string
	config Config
	lock   *flock.Flock
	git    *git.Client

	mu            sync.RWMutex
	lastWritten   []byte
	lastLoad      *time.Time
	lastSave      *time.Time
	watcherActive bool
}

// NewJSONStore creates a store for config.Path.
func NewJSONStore(config Config) *JSONStore {
	if config.LockPath == "" {
		config.LockPath = config.Path + ".lock"
	}
	if config.LockTimeout <= 0 {
		config.LockTimeout = defaultLockTimeout
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &JSONStore{
		Path:   config.Path,
		config: config,
		lock:   flock.New(config.LockPath),
	}
	if config.Versioning {
		s.git = git.NewClient(filepath.Dir(config.Path), config.Logger)
	}
	return s
}

// Load reads and decodes the whole file.
func (s *JSONStore) Load(ctx context.Context) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	records, err := DecodeCollection(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastLoad = &now
	s.lastWritten = data
	s.mu.Unlock()

	s.config.Logger.Debug("collection loaded", "path", s.Path, "records", len(records))
	return records, nil
}

// Save encodes records and overwrites the file with them.
//
// Workflow:
//  1. Encode the full collection (nothing is touched if this fails).
//  2. Acquire the cross-process lock file.
//  3. Overwrite the file, in place or via temp file + rename.
//  4. (If versioning is enabled) 'git add' and 'git commit' with the context change reason.
func (s *JSONStore) Save(ctx context.Context, records []core.Record) error {
	data, err := EncodeCollection(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.write(data); err != nil {
		return err
	}

	s.mu.Lock()
	now := time.Now()
	s.lastSave = &now
	s.lastWritten = data
	s.mu.Unlock()

	s.config.Logger.Info("collection saved", "path", s.Path, "records", len(records), "atomic", s.config.Atomic)

	if s.git != nil {
		if err := s.commit(ctx); err != nil {
			return fmt.Errorf("saved %s but failed to commit: %w", s.Path, err)
		}
	}
	return nil
}

func (s *JSONStore) acquire(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.config.LockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", s.Path, core.ErrLocked)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", s.Path, core.ErrLocked)
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func (s *JSONStore) write(data []byte) error {
	if s.config.Atomic {
		return writeFileAtomic(s.Path, data, s.perm())
	}
	if err := os.WriteFile(s.Path, data, s.perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

// perm keeps the mode of an existing file.
func (s *JSONStore) perm() os.FileMode {
	if info, err := os.Stat(s.Path); err == nil {
		return info.Mode().Perm()
	}
	return s.config.Perm
}

func (s *JSONStore) commit(ctx context.Context) error {
	if !git.IsInstalled() || !s.git.IsRepo() {
		s.config.Logger.Debug("versioning skipped, not a git work tree", "path", s.Path)
		return nil
	}

	name := filepath.Base(s.Path)
	status, err := s.git.Status(name)
	if err != nil {
		return err
	}
	if status == "" {
		return nil
	}

	msg := git.FormatCommitMessage(git.CommitTypeDocs, "", "update "+name, "")
	if reason := core.ChangeReason(ctx); reason != "" {
		msg = git.AppendFooter(reason)
	}
	if err := s.git.Add(name); err != nil {
		return err
	}
	return s.git.Commit(msg, name)
}

// Written reports whether data equals the last content this store read or wrote.
func (s *JSONStore) Written(data []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastWritten != nil && bytes.Equal(s.lastWritten, data)
}

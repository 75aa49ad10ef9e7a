package catalogue

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"llmprice-hq/pricebook/pkg/pricing"
)

// ErrNotLoaded is returned by Store.Snapshot before the first successful load.
var ErrNotLoaded = errors.New("catalogue not loaded")

// Snapshot is an immutable view of the catalogue at one point in time.
type Snapshot struct {
	Records  []pricing.PriceRecord
	Files    []string
	LoadedAt time.Time
}

// ReloadObserver is notified after each reload attempt.
type ReloadObserver interface {
	CatalogueReloaded(snap *Snapshot, err error)
}

// Store holds the current catalogue snapshot for a directory.
type Store struct {
	dir      string
	logger   *slog.Logger
	observer ReloadObserver

	mu   sync.RWMutex
	snap *Snapshot

	// now is overridden in tests.
	now func() time.Time
}

// NewStore creates a store for dir. Nothing is read until Reload.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// SetObserver registers an observer for reload results.
func (s *Store) SetObserver(o ReloadObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Dir returns the watched directory.
func (s *Store) Dir() string {
	return s.dir
}

// Reload reads the directory and replaces the snapshot. On failure the
// previous snapshot stays in place.
func (s *Store) Reload() error {
	records, files, err := LoadDir(s.dir)

	s.mu.Lock()
	observer := s.observer
	var snap *Snapshot
	if err == nil {
		snap = &Snapshot{
			Records:  records,
			Files:    files,
			LoadedAt: s.now(),
		}
		s.snap = snap
	}
	s.mu.Unlock()

	if observer != nil {
		observer.CatalogueReloaded(snap, err)
	}

	if err != nil {
		s.logger.Error("catalogue reload failed", "dir", s.dir, "error", err)
		return fmt.Errorf("reload catalogue: %w", err)
	}

	s.logger.Info("catalogue loaded",
		"dir", s.dir,
		"files", len(files),
		"records", len(records),
	)
	return nil
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNotLoaded
	}
	return s.snap, nil
}

// Loaded reports whether a snapshot is available.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

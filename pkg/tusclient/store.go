package tusclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/auriora/tusup/pkg/logging"
)

const (
	stateFileName = "upload-state.json"
	tmpFileName   = "upload-state.tmp"
)

// Store is the durable, process-wide registry of upload records. All reads
// and writes go through its lock; persist is called while holding the
// write lock so the on-disk file never lags a committed in-memory
// mutation an observer could see.
type Store struct {
	mu       sync.RWMutex
	config   TusConfig
	uploads  map[string]*UploadRecord
	statePath string
	tmpPath   string
}

// OpenStore creates config.StateDir if absent, loads an existing snapshot
// from it if present, or starts a fresh one seeded with config.
func OpenStore(config TusConfig) (*Store, error) {
	if err := os.MkdirAll(config.StateDir, 0o755); err != nil {
		return nil, errors.NewIOError("cannot create state_dir "+config.StateDir, err)
	}

	s := &Store{
		config:    config,
		uploads:   make(map[string]*UploadRecord),
		statePath: filepath.Join(config.StateDir, stateFileName),
		tmpPath:   filepath.Join(config.StateDir, tmpFileName),
	}

	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			if perr := s.persistLocked(); perr != nil {
				return nil, perr
			}
			return s, nil
		}
		return nil, errors.NewIOError("cannot read "+s.statePath, err)
	}

	var snapshot StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewSerdeError("cannot parse "+s.statePath, err)
	}

	s.config = snapshot.Config
	s.statePath = filepath.Join(s.config.StateDir, stateFileName)
	s.tmpPath = filepath.Join(s.config.StateDir, tmpFileName)
	for id, rec := range snapshot.Uploads {
		r := rec
		s.uploads[id] = &r
	}
	return s, nil
}

// Config returns the effective config the store was opened or last saved with.
func (s *Store) Config() TusConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Add inserts a brand-new record and persists. Fails with InvalidState if
// the id already exists.
func (s *Store) Add(record *UploadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.uploads[record.ID]; exists {
		return errors.NewInvalidStateError("upload already exists: " + record.ID)
	}
	s.uploads[record.ID] = record.clone()
	return s.persistLocked()
}

// Get returns a clone of the record with the given id.
func (s *Store) Get(id string) (*UploadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.uploads[id]
	if !ok {
		return nil, errors.NewUploadNotFoundError(id)
	}
	return r.clone(), nil
}

// Update replaces an existing record and persists. Fails with
// UploadNotFound if the id is unknown.
func (s *Store) Update(record *UploadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.uploads[record.ID]; !ok {
		return errors.NewUploadNotFoundError(record.ID)
	}
	s.uploads[record.ID] = record.clone()
	return s.persistLocked()
}

// Remove deletes a record and persists. Fails with UploadNotFound if
// absent.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.uploads[id]; !ok {
		return errors.NewUploadNotFoundError(id)
	}
	delete(s.uploads, id)
	return s.persistLocked()
}

// List returns a snapshot-consistent clone of every record.
func (s *Store) List() []*UploadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*UploadRecord, 0, len(s.uploads))
	for _, r := range s.uploads {
		out = append(out, r.clone())
	}
	return out
}

// Filter returns a snapshot-consistent clone of every record matching pred.
func (s *Store) Filter(pred func(*UploadRecord) bool) []*UploadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*UploadRecord
	for _, r := range s.uploads {
		if pred(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

// Save forces persistence of the current in-memory state.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// persistLocked writes the snapshot atomically: serialize, write to the
// tmp file, rename over the real one. Must be called with mu held for
// writing.
func (s *Store) persistLocked() error {
	snapshot := StateSnapshot{
		Version: snapshotVersion,
		Uploads: make(map[string]UploadRecord, len(s.uploads)),
		Config:  s.config,
	}
	for id, r := range s.uploads {
		snapshot.Uploads[id] = *r
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.NewSerdeError("cannot marshal state snapshot", err)
	}

	if err := os.WriteFile(s.tmpPath, data, 0o644); err != nil {
		return errors.NewIOError("cannot write "+s.tmpPath, err)
	}
	if err := os.Rename(s.tmpPath, s.statePath); err != nil {
		return errors.NewIOError("cannot rename "+s.tmpPath+" to "+s.statePath, err)
	}

	logging.Debug().Str("path", s.statePath).Int("uploads", len(s.uploads)).Msg("persisted upload state snapshot")
	return nil
}

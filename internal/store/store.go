// Package store implements the in-process relational engine: one table per
// entity kind, join tables for many-to-many relations, the session token
// registry, the per-user audit log and the binary snapshot persistence.
//
// The store is guarded by a single process-wide exclusive mutex. Callers
// (the service layer and the snapshot flusher) acquire it around each engine
// operation; the operations themselves run synchronously to completion and
// never block once the lock is held.
package store

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/models"
)

// PageSize is the fixed page size of every paginated listing.
const PageSize = 10

// SeedFunc populates a freshly cleared store. It runs with the store lock
// already held.
type SeedFunc func(*Store)

// Store owns all entity tables and their id allocators.
type Store struct {
	sync.Mutex

	logger *zap.Logger
	seed   SeedFunc

	state state
}

// state is the persisted portion of the store. It round-trips through gob
// snapshots, so every field is exported.
type state struct {
	Dirty       bool
	DelayMillis uint64

	Users      map[string]models.User
	NextUserID uint32

	Tokens map[string]string

	Classrooms      table[models.Classroom]
	Classes         table[models.Class]
	Subjects        table[models.Subject]
	SubjectTeachers table[models.SubjectTeacher]
	StudentSubjects table[models.StudentSubject]
	Occupancies     table[models.Occupancy]

	Modifications map[uint32][]models.Modification
}

func emptyState() state {
	return state{
		Dirty:           true,
		Users:           make(map[string]models.User),
		Tokens:          make(map[string]string),
		Classrooms:      newTable[models.Classroom](),
		Classes:         newTable[models.Class](),
		Subjects:        newTable[models.Subject](),
		SubjectTeachers: newTable[models.SubjectTeacher](),
		StudentSubjects: newTable[models.StudentSubject](),
		Occupancies:     newTable[models.Occupancy](),
		Modifications:   make(map[uint32][]models.Modification),
	}
}

// New returns an empty, seeded store without touching the filesystem.
// Intended for tests; servers use Open.
func New(seed SeedFunc, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger, seed: seed, state: emptyState()}
	if seed != nil {
		seed(s)
	}
	return s
}

// Open loads the snapshot at path. On any read or decode failure it degrades
// to an empty store and runs the seed procedure.
func Open(path string, seed SeedFunc, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger, seed: seed}

	data, err := os.ReadFile(path)
	if err == nil {
		err = s.restore(data)
	}
	if err == nil {
		logger.Info("store loaded from snapshot", zap.String("path", path))
		return s
	}

	logger.Warn("could not load snapshot, reseeding", zap.String("path", path), zap.Error(err))
	s.state = emptyState()
	if seed != nil {
		seed(s)
	}
	return s
}

// Reset clears every table and counter and reruns the seed procedure.
// Lock must be held.
func (s *Store) Reset() {
	s.state = emptyState()
	if s.seed != nil {
		s.seed(s)
	}
}

// SetDirty marks the in-memory state as diverged from the last snapshot.
func (s *Store) SetDirty() { s.state.Dirty = true }

// IsDirty reports whether there are unflushed mutations. Lock must be held.
func (s *Store) IsDirty() bool { return s.state.Dirty }

// Snapshot serializes the entire store to its binary snapshot form and
// clears the dirty flag. On encode failure the flag is left set so the next
// flush retries. Lock must be held.
func (s *Store) Snapshot() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(&s.state); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	s.state.Dirty = false
	return buf.Bytes(), nil
}

// SnapshotIfDirty acquires the lock itself, returning (nil, nil) when there
// is nothing to flush.
func (s *Store) SnapshotIfDirty() ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	if !s.state.Dirty {
		return nil, nil
	}
	return s.Snapshot()
}

// restore replaces the live state with one decoded from snapshot bytes.
func (s *Store) restore(data []byte) error {
	var st state
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	s.state = st
	return nil
}

// Restore replaces the entire live store with a deserialized snapshot.
// Lock must be held.
func (s *Store) Restore(data []byte) error {
	return s.restore(data)
}

// DumpJSON renders the whole store in a human-readable textual form.
// Lock must be held.
func (s *Store) DumpJSON() ([]byte, error) {
	return json.MarshalIndent(&s.state, "", "  ")
}

// DelayGet returns the configured artificial response delay. Lock must be held.
func (s *Store) DelayGet() time.Duration {
	return time.Duration(s.state.DelayMillis) * time.Millisecond
}

// DelaySet stores the artificial response delay. Lock must be held.
func (s *Store) DelaySet(d time.Duration) {
	s.state.DelayMillis = uint64(d / time.Millisecond)
	s.SetDirty()
}

// UpdateStatus reports the outcome of a partial update.
type UpdateStatus struct {
	Found   bool
	Updated bool
}

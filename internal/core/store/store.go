package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sebas-aldana/brm-client/internal/port"
)

// schemaVersion tags persisted snapshots so the on-disk format can evolve.
// A snapshot with an unknown version is ignored and refetched live.
const schemaVersion = 1

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Store caches the last full listing of a remote collection. Every successful
// fetch replaces the whole snapshot; there is no merging or patching. A failed
// fetch keeps the previous snapshot readable (stale-but-available) and records
// the error.
//
// Each fetch is tagged with a monotonic sequence number. A response arriving
// after a later fetch has already applied is discarded, so a slow superseded
// request can never overwrite fresher data.
type Store[T any] struct {
	name         string
	fetch        FetchFunc[T]
	snapshots    port.SnapshotStore
	persistFlags bool

	mu      sync.Mutex
	state   State
	items   []T
	lastErr error
	nextSeq uint64
	applied uint64
}

// snapshotEnvelope persists the snapshot alone; loading and error flags are
// transient and restart clean.
type snapshotEnvelope[T any] struct {
	SchemaVersion int `json:"schemaVersion"`
	Items         []T `json:"items"`
}

// stateEnvelope persists the snapshot together with the failure flags.
type stateEnvelope[T any] struct {
	SchemaVersion int    `json:"schemaVersion"`
	Items         []T    `json:"items"`
	Failed        bool   `json:"failed"`
	Error         string `json:"error,omitempty"`
}

// New builds a store named name (also its persistence key) around fetch.
// snapshots may be nil to disable persistence. When persistFlags is set the
// failure flags are written and restored alongside the items; otherwise only
// the items survive a restart.
func New[T any](name string, fetch FetchFunc[T], snapshots port.SnapshotStore, persistFlags bool) *Store[T] {
	return &Store[T]{
		name:         name,
		fetch:        fetch,
		snapshots:    snapshots,
		persistFlags: persistFlags,
		state:        StateIdle,
	}
}

// Load seeds the store from the snapshot store, so a restart shows the
// last-known data before the first live fetch resolves. Missing or
// unreadable snapshots are not errors; the store simply starts empty.
func (s *Store[T]) Load(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	raw, err := s.snapshots.Get(ctx, s.name)
	if errors.Is(err, port.ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistFlags {
		var env stateEnvelope[T]
		if err := json.Unmarshal(raw, &env); err != nil || env.SchemaVersion != schemaVersion {
			log.Warn().Str("store", s.name).Msg("discarding unreadable snapshot")
			return nil
		}
		s.items = env.Items
		if env.Failed {
			s.state = StateFailed
			s.lastErr = errors.New(env.Error)
		}
		return nil
	}

	var env snapshotEnvelope[T]
	if err := json.Unmarshal(raw, &env); err != nil || env.SchemaVersion != schemaVersion {
		log.Warn().Str("store", s.name).Msg("discarding unreadable snapshot")
		return nil
	}
	s.items = env.Items
	return nil
}

// FetchAll refreshes the snapshot from the remote listing endpoint. On
// failure the previous snapshot is kept and the error is both recorded and
// returned. A success that was superseded by a newer fetch is dropped.
func (s *Store[T]) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.state = StateLoading
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		log.Debug().Str("store", s.name).Uint64("seq", seq).Msg("discarding superseded fetch response")
		return nil
	}
	s.applied = seq

	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		log.Error().Err(err).Str("store", s.name).Msg("fetch failed, keeping previous snapshot")
		if s.persistFlags {
			s.persistLocked(ctx)
		}
		return fmt.Errorf("fetch %s: %w", s.name, err)
	}

	s.items = items
	s.state = StateReady
	s.lastErr = nil
	s.persistLocked(ctx)
	log.Info().Str("store", s.name).Int("items", len(items)).Msg("snapshot replaced")
	return nil
}

func (s *Store[T]) persistLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	var (
		raw []byte
		err error
	)
	if s.persistFlags {
		env := stateEnvelope[T]{SchemaVersion: schemaVersion, Items: s.items, Failed: s.state == StateFailed}
		if s.lastErr != nil {
			env.Error = s.lastErr.Error()
		}
		raw, err = json.Marshal(env)
	} else {
		raw, err = json.Marshal(snapshotEnvelope[T]{SchemaVersion: schemaVersion, Items: s.items})
	}
	if err == nil {
		err = s.snapshots.Put(ctx, s.name, raw)
	}
	if err != nil {
		// Persistence is best-effort; the in-memory snapshot stays correct.
		log.Warn().Err(err).Str("store", s.name).Msg("failed to persist snapshot")
	}
}

// Items returns a copy of the current snapshot. During Loading and Failed it
// is the most recent Ready (or seeded) data.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error recorded by the last failed fetch, or nil.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store[T]) Name() string {
	return s.name
}

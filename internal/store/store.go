// Package store owns the canonical in-memory quest, ally, and board
// collections and mirrors every successful mutation to a key-value
// storage provider. Consumers read snapshots and route all changes
// through store operations; unknown-id operations are silent no-ops and
// storage failures are logged, never surfaced.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"questline/internal/model"
	"questline/internal/storage"
)

// Fixed keys for the three persisted collections. Each holds one JSON
// array; a missing key loads as an empty collection.
const (
	questsKey = "quests"
	alliesKey = "allies"
	boardsKey = "boards"
)

// Store holds the application state for one running process. Construct
// it once in main and pass it by reference; it has no global instance.
type Store struct {
	mu  sync.RWMutex
	kv  storage.KV
	log zerolog.Logger
	now func() time.Time

	quests  []model.Quest
	allies  []model.Ally
	boards  []model.Board
	loading bool
}

// New creates a store backed by kv. The store starts empty with the
// loading flag set; call Load to populate it.
func New(kv storage.KV, log zerolog.Logger) *Store {
	return &Store{
		kv:      kv,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		quests:  []model.Quest{},
		allies:  []model.Ally{},
		boards:  []model.Board{},
		loading: true,
	}
}

// Load reads the three collections from storage. Each key is read
// independently; a missing key or a read/parse failure yields an empty
// collection for that key (logged, never returned). The loading flag is
// cleared unconditionally once all three reads have completed.
func (s *Store) Load(ctx context.Context) {
	quests := loadCollection[model.Quest](ctx, s, questsKey)
	allies := loadCollection[model.Ally](ctx, s, alliesKey)
	boards := loadCollection[model.Board](ctx, s, boardsKey)

	// Forward-compatible migration: quests written before sub-quests
	// existed load with an empty checklist (IsMultiStep already
	// defaults to false through the zero value).
	for i := range quests {
		if quests[i].SubQuests == nil {
			quests[i].SubQuests = []model.SubQuest{}
		}
	}

	s.mu.Lock()
	s.quests = quests
	s.allies = allies
	s.boards = boards
	s.loading = false
	s.mu.Unlock()
}

// loadCollection reads and decodes one persisted collection, degrading
// to empty on any failure.
func loadCollection[T any](ctx context.Context, s *Store, key string) []T {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("reading collection")
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("decoding collection")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// write pairs a storage key with the snapshot to serialize under it.
type write struct {
	key   string
	value any
}

// persist serializes each snapshot and overwrites its key as a full
// replacement. Writes are issued concurrently; a failure on one key
// never prevents or rolls back the others. In-memory state has already
// advanced by the time persist runs, so failures are logged and the
// application continues with an unpersisted delta.
func (s *Store) persist(ctx context.Context, writes ...write) {
	var wg sync.WaitGroup
	for _, w := range writes {
		wg.Add(1)
		go func(w write) {
			defer wg.Done()
			data, err := json.Marshal(w.value)
			if err != nil {
				s.log.Error().Err(err).Str("key", w.key).Msg("encoding collection")
				return
			}
			if err := s.kv.Set(ctx, w.key, string(data)); err != nil {
				s.log.Error().Err(err).Str("key", w.key).Msg("persisting collection")
			}
		}(w)
	}
	wg.Wait()
}

// Loading reports whether the initial load is still in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Quests returns a deep-copied snapshot of the quest collection.
func (s *Store) Quests() []model.Quest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneQuests(s.quests)
}

// Allies returns a snapshot of the ally collection.
func (s *Store) Allies() []model.Ally {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Ally(nil), s.allies...)
}

// Boards returns a deep-copied snapshot of the board collection.
func (s *Store) Boards() []model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Board, len(s.boards))
	for i, b := range s.boards {
		out[i] = b.Clone()
	}
	return out
}

// Quest returns a snapshot of a single quest by id.
func (s *Store) Quest(id string) (model.Quest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quests {
		if q.ID == id {
			return q.Clone(), true
		}
	}
	return model.Quest{}, false
}

// Ally returns a single ally by id. A miss is not an error: quests hold
// weak references, and a stale id simply renders as unknown.
func (s *Store) Ally(id string) (model.Ally, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allyLocked(id)
}

func (s *Store) allyLocked(id string) (model.Ally, bool) {
	for _, a := range s.allies {
		if a.ID == id {
			return a, true
		}
	}
	return model.Ally{}, false
}

func (s *Store) questIndexLocked(id string) int {
	for i := range s.quests {
		if s.quests[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneQuests(quests []model.Quest) []model.Quest {
	out := make([]model.Quest, len(quests))
	for i, q := range quests {
		out[i] = q.Clone()
	}
	return out
}

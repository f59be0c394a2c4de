package history

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/medusa-ai/forge/internal/prompt"
)

// StorageKey is the single backend key holding the serialized log.
const StorageKey = "promptHistory"

// Capacity is the maximum number of entries kept.
const Capacity = 50

// Entry is one completed generation. Entries are immutable once created.
type Entry struct {
	ID        string           `json:"id"`
	Timestamp int64            `json:"timestamp"` // epoch milliseconds
	Idea      string           `json:"idea"`
	Prompt    string           `json:"prompt"`
	Tool      prompt.Tool      `json:"tool"`
	Style     *prompt.Style    `json:"style,omitempty"`
	Category  *prompt.Category `json:"category,omitempty"`
}

// Options returns the entry's modifiers with absent values as none.
func (e Entry) Options() prompt.Options {
	opts := prompt.Options{Style: prompt.StyleNone, Category: prompt.CategoryNone}
	if e.Style != nil {
		opts.Style = *e.Style
	}
	if e.Category != nil {
		opts.Category = *e.Category
	}
	return opts
}

// Record holds the fields supplied when appending an entry.
type Record struct {
	Idea    string
	Prompt  string
	Tool    prompt.Tool
	Options prompt.Options
}

// Backend persists the serialized log under a single key.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store owns the ordered history log and mirrors it to a Backend.
// All mutation goes through Append and Clear.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	entries  []Entry // newest first
	capacity int
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity lowers the entry limit. Values outside 1..Capacity are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 && n <= Capacity {
			s.capacity = n
		}
	}
}

// WithClock overrides the time source used for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates a Store and loads the persisted log from backend.
// A missing key yields an empty log. A value that does not parse is removed
// and the store starts empty; the parse error is logged, never returned.
// Only a backend read failure is returned.
func Open(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:  backend,
		capacity: Capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads and parses the persisted log into s.entries. A log longer than
// the capacity is truncated and written back so storage matches memory.
func (s *Store) load(ctx context.Context) error {
	raw, ok, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	entries, err := parse(raw)
	if err != nil {
		log.Printf("history: discarding unreadable persisted log: %v", err)
		if rmErr := s.backend.Remove(ctx, StorageKey); rmErr != nil {
			log.Printf("history: failed to remove unreadable log: %v", rmErr)
		}
		return nil
	}

	s.entries = entries
	if len(entries) > s.capacity {
		s.entries = entries[:s.capacity]
		if err := s.persist(ctx); err != nil {
			log.Printf("history: failed to persist truncated log: %v", err)
		}
	}
	return nil
}

// parse decodes a persisted log. Entries missing required fields make the
// whole value invalid, matching how foreign data under the key is treated.
func parse(raw string) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	for i, e := range entries {
		if e.ID == "" || e.Idea == "" {
			return nil, &invalidEntryError{index: i}
		}
		if _, err := prompt.ParseTool(string(e.Tool)); err != nil {
			return nil, &invalidEntryError{index: i}
		}
	}
	return entries, nil
}

type invalidEntryError struct {
	index int
}

func (e *invalidEntryError) Error() string {
	return fmt.Sprintf("invalid history entry at index %d", e.index)
}

// Append records a new entry, evicting the oldest beyond capacity, and
// persists the whole log. Persistence failure is logged and does not undo
// the in-memory update.
func (s *Store) Append(ctx context.Context, rec Record) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := Entry{
		ID:        newID(now),
		Timestamp: now.UnixMilli(),
		Idea:      rec.Idea,
		Prompt:    rec.Prompt,
		Tool:      rec.Tool,
	}
	opts := rec.Options.Normalize(rec.Tool)
	if rec.Tool.UsesStyle() {
		st := opts.Style
		entry.Style = &st
	}
	if rec.Tool.UsesCategory() {
		cat := opts.Category
		entry.Category = &cat
	}

	updated := make([]Entry, 0, min(len(s.entries)+1, s.capacity))
	updated = append(updated, entry)
	updated = append(updated, s.entries...)
	if len(updated) > s.capacity {
		updated = updated[:s.capacity]
	}
	s.entries = updated

	if err := s.persist(ctx); err != nil {
		log.Printf("history: failed to persist log: %v", err)
	}
	return entry
}

// persist writes the full log. Caller must hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, StorageKey, string(data))
}

// List returns a copy of the log, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clear empties the log and removes the persisted value.
// The in-memory log is cleared even when removal fails.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.backend.Remove(ctx, StorageKey)
}

// newID generates a ULID for t.
func newID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

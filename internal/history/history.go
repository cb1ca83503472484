// Package history keeps the clipboard history that the launcher and
// the clipboard daemon share through one JSON file. Entries are stored
// most recent first; every mutation persists atomically so the other
// process always reads a complete document.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bkwi/beacon/internal/store"
)

const FileName = "clipboard_history.json"

type Entry struct {
	Content     string `json:"content"`
	ContentHash string `json:"content_hash"`
	CreatedAt   string `json:"created_at"`
	Pinned      bool   `json:"pinned,omitempty"`
}

type document struct {
	Entries []Entry `json:"entries"`
}

type Store struct {
	mu       sync.Mutex
	path     string
	capacity int
	entries  []Entry
}

// Open loads the history file at path. A missing or corrupt file
// starts the store empty rather than failing.
func Open(path string, capacity int) (*Store, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("history capacity must be positive, got %d", capacity)
	}
	s := &Store{path: path, capacity: capacity}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Hash is the identity of a clipboard entry.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Reload replaces the in-memory entries with whatever is on disk.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc document
	if _, err := store.LoadJSON(s.path, &doc); err != nil {
		return err
	}
	s.entries = s.normalize(doc.Entries)
	return nil
}

// Append records content as the most recent entry. Re-appending
// existing content bumps it to the front and keeps its pin; nothing
// else changes, so the operation is idempotent apart from recency.
func (s *Store) Append(content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash := Hash(content)
	pinned := false
	for i, entry := range s.entries {
		if entry.ContentHash == hash {
			pinned = entry.Pinned
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	entry := Entry{
		Content:     content,
		ContentHash: hash,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Pinned:      pinned,
	}
	s.entries = append([]Entry{entry}, s.entries...)
	s.evict()
	return s.persist()
}

// List returns the entries most recent first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SetPinned pins or unpins the entry with the given hash. Pinned
// entries survive eviction.
func (s *Store) SetPinned(hash string, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ContentHash == hash {
			s.entries[i].Pinned = pinned
			return s.persist()
		}
	}
	return fmt.Errorf("no history entry with hash %s", hash)
}

// Remove deletes the entry with the given hash.
func (s *Store) Remove(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ContentHash == hash {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return s.persist()
		}
	}
	return fmt.Errorf("no history entry with hash %s", hash)
}

// Clear drops every unpinned entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.Pinned {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
	return s.persist()
}

// evict trims to capacity, dropping the least recent unpinned entry
// first. When everything older is pinned, the newest unpinned entry is
// the one that goes, so pins are never displaced.
func (s *Store) evict() {
	for len(s.entries) > s.capacity {
		removed := false
		for i := len(s.entries) - 1; i >= 0; i-- {
			if !s.entries[i].Pinned {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			// Every entry is pinned; capacity still wins.
			s.entries = s.entries[:s.capacity]
		}
	}
}

func (s *Store) persist() error {
	return store.SaveJSON(s.path, document{Entries: s.entries})
}

func (s *Store) normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := map[string]struct{}{}
	for _, entry := range entries {
		if entry.Content == "" {
			continue
		}
		if entry.ContentHash == "" {
			entry.ContentHash = Hash(entry.Content)
		}
		if _, dup := seen[entry.ContentHash]; dup {
			continue
		}
		seen[entry.ContentHash] = struct{}{}
		out = append(out, entry)
	}
	if len(out) > s.capacity {
		out = out[:s.capacity]
	}
	return out
}

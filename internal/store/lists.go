// Package store persists the append-only list documents (quotes, feature
// requests) the reply handlers draw from.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrEmptyList is returned when a random entry is requested from an empty
// document.
var ErrEmptyList = errors.New("store: list is empty")

// Entry is one item in a list document.
type Entry struct {
	Text  string    `json:"text"`
	User  string    `json:"user,omitempty"`
	Added time.Time `json:"added"`
}

// ListStore is a file-backed append-only list. Each append reads the whole
// document and rewrites it in full; consumers never depend on anything beyond
// the append succeeding or failing.
type ListStore struct {
	mu   sync.Mutex
	path string
}

// NewListStore creates a store backed by the JSON document at path. The file
// is created on first append.
func NewListStore(path string) *ListStore {
	return &ListStore{path: path}
}

func (s *ListStore) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return entries, nil
}

// Append adds one entry and rewrites the document.
func (s *ListStore) Append(text, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	entries = append(entries, Entry{Text: text, User: user, Added: time.Now().UTC()})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// All returns every entry in the document, oldest first.
func (s *ListStore) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Random returns one entry chosen uniformly at random.
func (s *ListStore) Random() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrEmptyList
	}
	return entries[rand.Intn(len(entries))], nil
}

// Len reports the number of entries currently in the document.
func (s *ListStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

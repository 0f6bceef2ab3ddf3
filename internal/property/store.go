// Package property holds persisted, change-notifying value cells keyed by
// name. Cells are registered on a Store, which can be saved to and loaded
// from a JSON document on disk.
package property

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// FormatVersion is written into every saved document
const FormatVersion = "1.0"

// ErrTypeMismatch is returned when a persisted value cannot be decoded into
// the type of the cell registered under the same key.
var ErrTypeMismatch = errors.New("property type mismatch")

// document is the on-disk layout
type document struct {
	Version string                     `json:"version"`
	Values  map[string]json.RawMessage `json:"values"`
}

// cell is the type-erased view of a Value the store works with
type cell interface {
	key() string
	encode() (json.RawMessage, error)
	decode(raw json.RawMessage) error
	loaded()
}

// Store owns every registered cell plus raw values loaded from disk that no
// cell has claimed yet.
type Store struct {
	mu        sync.Mutex
	cells     map[string]cell
	raw       map[string]json.RawMessage
	observers []func(key string)
	log       zerolog.Logger
}

// NewStore creates an empty store
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		cells: make(map[string]cell),
		raw:   make(map[string]json.RawMessage),
		log:   log,
	}
}

// OnChange registers an observer called with the key of every changed cell
func (s *Store) OnChange(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Keys returns every key known to the store, registered or not, sorted
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.cells)+len(s.raw))
	for k := range s.cells {
		keys = append(keys, k)
	}
	for k := range s.raw {
		if _, ok := s.cells[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// register attaches a cell. A raw value loaded earlier under the same key is
// decoded into it; the bool result reports whether that happened.
func (s *Store) register(c cell) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells[c.key()] = c
	raw, ok := s.raw[c.key()]
	if !ok {
		return false, nil
	}
	delete(s.raw, c.key())
	if err := c.decode(raw); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrTypeMismatch, c.key(), err)
	}
	return true, nil
}

// unregister detaches a cell but keeps its last value, so a cell registered
// later under the same key picks it up again.
func (s *Store) unregister(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cells[key]
	if !ok {
		return
	}
	delete(s.cells, key)
	if raw, err := c.encode(); err == nil {
		s.raw[key] = raw
	}
}

func (s *Store) notify(key string) {
	s.mu.Lock()
	observers := append([]func(string){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(key)
	}
}

// Save writes every cell and every unclaimed raw value to path
func (s *Store) Save(path string) error {
	s.mu.Lock()
	doc := document{Version: FormatVersion, Values: make(map[string]json.RawMessage, len(s.cells)+len(s.raw))}
	for k, raw := range s.raw {
		doc.Values[k] = raw
	}
	for k, c := range s.cells {
		raw, err := c.encode()
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to encode %s: %w", k, err)
		}
		doc.Values[k] = raw
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write properties file: %w", err)
	}

	s.log.Debug().Str("path", path).Int("values", len(doc.Values)).Msg("saved properties")
	return nil
}

// Load reads path and applies its values. Registered cells are updated and
// their observers notified; other values wait for a cell to claim them. A
// missing file is not an error.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read properties file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse properties file: %w", err)
	}

	var changed []cell
	var errs []error

	s.mu.Lock()
	for k, raw := range doc.Values {
		c, ok := s.cells[k]
		if !ok {
			s.raw[k] = raw
			continue
		}
		if err := c.decode(raw); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrTypeMismatch, k, err))
			continue
		}
		changed = append(changed, c)
	}
	s.mu.Unlock()

	sort.Slice(changed, func(i, j int) bool { return changed[i].key() < changed[j].key() })
	for _, c := range changed {
		c.loaded()
		s.notify(c.key())
	}

	s.log.Debug().Str("path", path).Int("applied", len(changed)).Msg("loaded properties")
	return errors.Join(errs...)
}

package pattern

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a named pattern does not exist in the
// store. Validation treats this as fatal: no partial report is produced
// against a missing reference.
var ErrNotFound = errors.New("pattern not found")

const configFileName = "config.json"

// Store persists patterns as one pretty-printed JSON file per pattern
// under a directory (default "scaffs"). Malformed or unreadable pattern
// files are skipped with a warning, never fatal.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first save.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "scaffs"
	}
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes a pattern to the store, overwriting any previous pattern
// with the same name.
func (s *Store) Save(p *Pattern) error {
	if len(p.Files) == 0 {
		return fmt.Errorf("pattern %q has no files", p.Name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding pattern %q: %w", p.Name, err)
	}
	path := filepath.Join(s.dir, patternFileName(p.Name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing pattern %q: %w", p.Name, err)
	}
	return nil
}

// Load returns the pattern with the given name, or ErrNotFound.
func (s *Store) Load(name string) (*Pattern, error) {
	patterns, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, p := range patterns {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// LoadAll reads every pattern in the store, sorted by name. A missing
// store directory yields an empty list.
func (s *Store) LoadAll() ([]*Pattern, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store directory: %w", err)
	}

	var patterns []*Pattern
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" || entry.Name() == configFileName {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: could not read pattern file %s: %v", path, err)
			continue
		}
		var p Pattern
		if err := json.Unmarshal(data, &p); err != nil {
			log.Printf("Warning: could not parse pattern file %s: %v", path, err)
			continue
		}
		patterns = append(patterns, &p)
	}

	sort.Slice(patterns, func(i, j int) bool { return patterns[i].Name < patterns[j].Name })
	return patterns, nil
}

func patternFileName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_")) + ".json"
}

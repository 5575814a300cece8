package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
	"github.com/wricardo/hexoban/game/service"
)

var (
	ErrPuzzleNotFound  = service.ErrPuzzleNotFound
	ErrInvalidPuzzle   = service.ErrInvalidPuzzle
	ErrInvalidPuzzleID = errors.New("invalid puzzle id")
)

// DefaultPuzzleID is preferred as the default puzzle when present.
const DefaultPuzzleID = "first-steps"

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

type entry struct {
	def        *engine.Definition
	path       string
	collection string
}

// Manager handles puzzle loading and caching
type Manager struct {
	levelsDir     string
	defaultPuzzle *engine.Definition
	puzzles       map[string]*entry
	mu            sync.RWMutex
}

// NewManager creates a puzzle library rooted at levelsDir
func NewManager(levelsDir string) (*Manager, error) {
	info, err := os.Stat(levelsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("levels directory does not exist: %s", levelsDir)
		}
		return nil, fmt.Errorf("failed to stat levels directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("levels path is not a directory: %s", levelsDir)
	}

	m := &Manager{levelsDir: levelsDir}
	if err := m.RefreshCache(); err != nil {
		return nil, err
	}
	return m, nil
}

// Dir returns the library root.
func (m *Manager) Dir() string {
	return m.levelsDir
}

// RefreshCache rescans the levels directory
func (m *Manager) RefreshCache() error {
	puzzles, err := m.scan()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.puzzles = puzzles
	m.defaultPuzzle = m.pickDefault()
	return nil
}

func (m *Manager) scan() (map[string]*entry, error) {
	puzzles := make(map[string]*entry)
	err := filepath.WalkDir(m.levelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		def, err := engine.LoadDefinition(path)
		if err != nil {
			log.Printf("Skipping puzzle %s: %v", path, err)
			return nil
		}

		rel, _ := filepath.Rel(m.levelsDir, path)
		collection := filepath.ToSlash(filepath.Dir(rel))
		if collection == "." {
			collection = ""
		}
		id := def.ID
		if id == "" {
			id = strings.TrimSuffix(d.Name(), ".json")
			def.ID = id
		}
		if prev, exists := puzzles[id]; exists {
			log.Printf("Duplicate puzzle id %q in %s (already loaded from %s)", id, path, prev.path)
			return nil
		}
		puzzles[id] = &entry{def: def, path: path, collection: collection}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan levels directory: %w", err)
	}
	return puzzles, nil
}

// LoadPuzzle returns a puzzle by id, falling back to a path relative to the library root
func (m *Manager) LoadPuzzle(id string) (*engine.Definition, error) {
	m.mu.RLock()
	if e, exists := m.puzzles[id]; exists {
		m.mu.RUnlock()
		return e.def, nil
	}
	m.mu.RUnlock()

	rel := filepath.Clean(filepath.FromSlash(id))
	if id == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return nil, ErrPuzzleNotFound
	}
	if !strings.HasSuffix(rel, ".json") {
		rel += ".json"
	}
	path := filepath.Join(m.levelsDir, rel)

	def, err := engine.LoadDefinition(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrPuzzleNotFound
		}
		if errors.Is(err, engine.ErrInvalidDefinition) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
		}
		return nil, err
	}
	if def.ID == "" {
		def.ID = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	collection := filepath.ToSlash(filepath.Dir(rel))
	if collection == "." {
		collection = ""
	}
	m.puzzles[id] = &entry{def: def, path: path, collection: collection}
	return def, nil
}

// ListPuzzles returns every cached puzzle sorted by collection then id
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]*service.PuzzleInfo, 0, len(m.puzzles))
	for id, e := range m.puzzles {
		rel, err := filepath.Rel(m.levelsDir, e.path)
		if err != nil {
			rel = filepath.Base(e.path)
		}
		stats := engine.Stats(e.def)
		infos = append(infos, &service.PuzzleInfo{
			ID:         id,
			Filename:   filepath.ToSlash(rel),
			Collection: e.collection,
			Name:       e.def.Name,
			Author:     e.def.Author,
			Source:     e.def.Source,
			Difficulty: e.def.Difficulty,
			Cells:      stats.Cells,
			Crates:     stats.Crates,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Collection != infos[j].Collection {
			return infos[i].Collection < infos[j].Collection
		}
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

// Count returns the number of cached puzzles.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.puzzles)
}

// GetDefault returns the default puzzle
func (m *Manager) GetDefault() *engine.Definition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPuzzle
}

// SetDefault sets the default puzzle by id
func (m *Manager) SetDefault(id string) error {
	def, err := m.LoadPuzzle(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPuzzle = def
	return nil
}

// pickDefault must be called with the write lock held.
func (m *Manager) pickDefault() *engine.Definition {
	if e, ok := m.puzzles[DefaultPuzzleID]; ok {
		return e.def
	}
	if len(m.puzzles) == 0 {
		return minimalPuzzle()
	}
	ids := make([]string, 0, len(m.puzzles))
	for id := range m.puzzles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return m.puzzles[ids[0]].def
}

// SavePuzzle stores def at the library root, assigning an id when missing
func (m *Manager) SavePuzzle(def *engine.Definition) error {
	return m.Save("", def)
}

// Save writes def as <collection>/<id>.json under the library root
func (m *Manager) Save(collection string, def *engine.Definition) error {
	if err := engine.ValidateDefinition(def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if !idPattern.MatchString(def.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidPuzzleID, def.ID)
	}
	if collection != "" {
		for _, part := range strings.Split(collection, "/") {
			if !idPattern.MatchString(part) {
				return fmt.Errorf("%w: collection %q", ErrInvalidPuzzleID, collection)
			}
		}
	}

	dir := filepath.Join(m.levelsDir, filepath.FromSlash(collection))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}

	data, err := engine.Encode(def)
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	path := filepath.Join(dir, def.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	m.mu.Lock()
	m.puzzles[def.ID] = &entry{def: def, path: path, collection: collection}
	m.mu.Unlock()

	return nil
}

// minimalPuzzle is used when the library holds no valid puzzles
func minimalPuzzle() *engine.Definition {
	worker := hex.Coord{I: 0, J: 0}
	return &engine.Definition{
		ID:      "corridor",
		Name:    "Corridor",
		Terrain: []hex.Coord{{I: 0, J: 0}, {I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3}},
		Init: engine.Init{
			Goals:  []hex.Coord{{I: 0, J: 3}},
			Crates: []hex.Coord{{I: 0, J: 1}},
			Worker: &worker,
		},
	}
}

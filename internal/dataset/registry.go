package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Registry holds the datasets available to the server. Safe for concurrent
// use; tables themselves are treated as immutable once added.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Add registers a table under its ID.
func (r *Registry) Add(t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[t.ID] = t
}

// Get looks a table up by ID, falling back to name so hosts can address
// datasets the way users refer to them.
func (r *Registry) Get(ref string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tables[ref]; ok {
		return t, true
	}
	for _, t := range r.tables {
		if t.Name == ref {
			return t, true
		}
	}
	return nil, false
}

// List returns all tables sorted by name.
func (r *Registry) List() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LoadDir loads every .csv and .jsonl file in dir concurrently and
// registers the results. Returns the number of datasets loaded.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(4)

	loaded := 0
	var mu sync.Mutex
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".jsonl" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			t, err := Load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			r.Add(t)
			mu.Lock()
			loaded++
			mu.Unlock()
			log.Debug().Str("dataset", t.Name).Int("rows", t.RowCount()).Msg("Dataset loaded")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return loaded, err
	}
	return loaded, nil
}

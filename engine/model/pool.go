package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/stonegate/engine/renderer"
)

// Pool is a named collection of models.
type Pool struct {
	mu     *sync.RWMutex
	models map[string]Model
}

// NewPool creates an empty model pool.
func NewPool() *Pool {
	return &Pool{
		mu:     &sync.RWMutex{},
		models: make(map[string]Model),
	}
}

// Add stores m under its name, replacing any model with the same name.
func (p *Pool) Add(m Model) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.models[m.Name()] = m
}

// Get returns the model with the given name.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - Model: the model, or nil
//   - bool: whether it was found
func (p *Pool) Get(name string) (Model, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	m, ok := p.models[name]
	return m, ok
}

// Matching returns every model whose name contains substr, sorted by name.
//
// Parameters:
//   - substr: the name fragment to match, e.g. "Stone"
//
// Returns:
//   - []Model: the matching models, possibly empty
func (p *Pool) Matching(substr string) []Model {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []Model
	for name, m := range p.models {
		if strings.Contains(name, substr) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Len returns the number of models in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.models)
}

// Upload creates GPU buffers for every model in the pool.
//
// Parameters:
//   - r: the renderer to upload through
//
// Returns:
//   - error: the first upload error
func (p *Pool) Upload(r renderer.Renderer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, m := range p.models {
		if err := m.Upload(r); err != nil {
			return err
		}
	}
	return nil
}

// StoneName returns the canonical name of the i-th generated stone.
func StoneName(i int) string {
	return fmt.Sprintf("Stone.%02d", i)
}

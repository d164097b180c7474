package concepts

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory resolver seeded with concepts. It backs tests,
// offline editing, and the concept search component.
type Memory struct {
	mu       sync.RWMutex
	concepts map[string]Concept
}

// NewMemory constructs an empty in-memory resolver.
func NewMemory() *Memory {
	return &Memory{concepts: make(map[string]Concept)}
}

// Add registers concepts, replacing entries with the same UUID.
func (m *Memory) Add(concepts ...Concept) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range concepts {
		if c.UUID == "" {
			continue
		}
		m.concepts[c.UUID] = c
	}
}

// LookupBatch implements Resolver.
func (m *Memory) LookupBatch(_ context.Context, refs []string) (BatchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := BatchResult{}
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if concept, ok := m.concepts[ref]; ok {
			result.Resolved = append(result.Resolved, concept)
		} else {
			result.Unresolved = append(result.Unresolved, ref)
		}
	}
	return result, nil
}

// Search implements Searcher with a case-insensitive substring match over
// display names, ordered by display for stable results.
func (m *Memory) Search(_ context.Context, query string, limit int) ([]Concept, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	var out []Concept
	for _, c := range m.concepts {
		if needle == "" || strings.Contains(strings.ToLower(c.Display), needle) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Display < out[j].Display })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ Resolver = (*Memory)(nil)
	_ Searcher = (*Memory)(nil)
)

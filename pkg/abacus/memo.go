package abacus

import (
	"sync"

	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// memo caches complete symbol results, errors included, by composite key.
//
// Concurrent misses on the same key may both resolve it; the last store
// wins. Sequential references resolve once.
type memo struct {
	mu      sync.Mutex
	results map[string]value.Result
}

func newMemo() *memo {
	return &memo{results: make(map[string]value.Result)}
}

func (m *memo) get(key string) (value.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.results[key]
	return res, ok
}

func (m *memo) put(key string, res value.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[key] = res
}

func (m *memo) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.results)
}

func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

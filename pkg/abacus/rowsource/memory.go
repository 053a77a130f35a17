package rowsource

import (
	"context"
	"io"
	"sync"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
)

// Memory serves tables held in memory, keyed by path. The first record of a
// table is its header when the Spec asks for one.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][][]string
}

// NewMemory creates an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string][][]string)}
}

// Put stores records under path, replacing any previous table.
func (m *Memory) Put(path string, records [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[path] = records
}

// Open implements Opener.
func (m *Memory) Open(_ context.Context, spec Spec) (Iterator, error) {
	m.mu.RLock()
	records, ok := m.tables[spec.Path]
	m.mu.RUnlock()
	if !ok {
		return nil, &abserrors.SourceError{Path: spec.Path, Op: "open", Err: abserrors.ErrSourceNotFound}
	}

	it := &sliceIterator{records: records}
	if spec.HasHeader && len(records) > 0 {
		it.header = records[0]
		it.records = records[1:]
	}
	return it, nil
}

type sliceIterator struct {
	header  []string
	records [][]string
	pos     int
}

func (it *sliceIterator) Next() (Row, error) {
	if it.pos >= len(it.records) {
		return Row{}, io.EOF
	}
	record := it.records[it.pos]
	it.pos++
	if it.header == nil {
		return PositionalRow(record), nil
	}
	return NewRow(it.header, record), nil
}

func (it *sliceIterator) Close() error {
	it.pos = len(it.records)
	return nil
}

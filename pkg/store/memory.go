package store

import (
	"sort"
	"sync"

	"github.com/LanceJenkinZA/DateSense/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
// Useful for tests and one-shot runs that never touch disk.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*types.Run // keyed by source_id
	seq  map[string]int        // insertion order, breaks timestamp ties
	next int
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*types.Run),
		seq:  make(map[string]int),
	}
}

// AddRun stores a run record, replacing any previous run for the same
// source ID.
func (m *MemoryStore) AddRun(r *types.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *r
	m.runs[r.SourceID] = &clone
	m.next++
	m.seq[r.SourceID] = m.next
	return nil
}

// GetRuns retrieves all runs, most recent first.
func (m *MemoryStore) GetRuns() ([]*types.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*types.Run, 0, len(m.runs))
	for _, r := range m.runs {
		clone := *r
		runs = append(runs, &clone)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].DetectedAt.Equal(runs[j].DetectedAt) {
			return runs[i].DetectedAt.After(runs[j].DetectedAt)
		}
		return m.seq[runs[i].SourceID] > m.seq[runs[j].SourceID]
	})
	return runs, nil
}

// RunExists checks if a run with this source ID exists.
func (m *MemoryStore) RunExists(sourceID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.runs[sourceID]
	return exists, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// MemoryStore is an in-memory Store for tests and single-process usage.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*scene.Visualization
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*scene.Visualization)}
}

// Save stores the visualization, assigning an ID if it has none.
func (s *MemoryStore) Save(ctx context.Context, viz *scene.Visualization) (string, error) {
	if viz.ID == "" {
		viz.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viz.ID] = viz
	return viz.ID, nil
}

// Get retrieves a visualization by identifier.
func (s *MemoryStore) Get(ctx context.Context, id string) (*scene.Visualization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	viz, ok := s.data[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeVisualizationNotFound, "visualization %s not found", id)
	}
	return viz, nil
}

// Delete removes a visualization.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// Package store persists processed visualizations by identifier.
//
// The engine itself is storage-agnostic; this package covers the interface
// boundary to the lesson platform: save the orchestrator's JSON-serializable
// output, fetch it back for rendering. Two implementations are provided: a
// MongoDB store for the service deployment and an in-memory store for tests
// and single-process usage.
package store

import (
	"context"

	"github.com/lessonlab/vizboard/pkg/scene"
)

// Store saves and retrieves processed visualizations.
type Store interface {
	// Save persists the visualization and returns its identifier.
	// A visualization without an ID is assigned a fresh one.
	Save(ctx context.Context, viz *scene.Visualization) (string, error)

	// Get retrieves a visualization by identifier.
	// Returns an error with ErrCodeVisualizationNotFound when absent.
	Get(ctx context.Context, id string) (*scene.Visualization, error)

	// Delete removes a visualization. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

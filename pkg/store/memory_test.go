package store

import (
	"context"
	"testing"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/scene"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	viz := &scene.Visualization{
		Scenes: []scene.Scene{{ID: "intro", Duration: 10}},
		Canvas: canvas.Default(),
	}

	id, err := s.Save(ctx, viz)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save should assign an id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Scenes) != 1 || got.Scenes[0].ID != "intro" {
		t.Errorf("Get returned wrong visualization: %+v", got)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCodeVisualizationNotFound) {
		t.Errorf("Get(missing) = %v, want VISUALIZATION_NOT_FOUND", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, _ := s.Save(ctx, &scene.Visualization{})
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, id); err == nil {
		t.Error("Get after Delete should fail")
	}

	// Deleting a missing id is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestMemoryStorePreservesExplicitID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Save(ctx, &scene.Visualization{ID: "lesson-42"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id != "lesson-42" {
		t.Errorf("Save rewrote explicit id: %s", id)
	}
}

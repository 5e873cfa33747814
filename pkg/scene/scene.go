// Package scene defines the serialization types for processed visualizations:
// shapes with concrete pixel coordinates, animations bound to shape indices,
// narration sync blocks, and the assembled response.
//
// The format is used for API responses, storage, and caching, and is designed
// for round-trip fidelity: export → re-import produces identical results.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalVisualization serializes a Visualization to pretty-printed JSON.
func MarshalVisualization(v *Visualization) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// UnmarshalVisualization deserializes JSON bytes into a Visualization.
// Validates that every shape carries concrete, renderable geometry.
func UnmarshalVisualization(data []byte) (*Visualization, error) {
	var v Visualization
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal visualization: %w", err)
	}

	for si, sc := range v.Scenes {
		for hi, sh := range sc.Shapes {
			if !ValidShapeTypes[sh.Type] {
				return nil, fmt.Errorf("scene %d shape %d: unknown type %q", si, hi, sh.Type)
			}
			if sh.Width <= 0 || sh.Height <= 0 {
				return nil, fmt.Errorf("scene %d shape %d: missing dimensions", si, hi)
			}
		}
		for ai, an := range sc.Animations {
			if an.ShapeIndex < 0 || an.ShapeIndex >= len(sc.Shapes) {
				return nil, fmt.Errorf("scene %d animation %d: shape index %d out of range",
					si, ai, an.ShapeIndex)
			}
		}
	}

	return &v, nil
}

// WriteVisualizationFile writes a Visualization to a JSON file.
func WriteVisualizationFile(v *Visualization, path string) error {
	data, err := MarshalVisualization(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadVisualizationFile reads a Visualization from a JSON file.
func ReadVisualizationFile(path string) (*Visualization, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalVisualization(data)
}

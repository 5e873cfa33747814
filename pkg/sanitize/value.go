// Package sanitize validates and coerces untrusted scene input into strongly
// typed shapes and animations.
//
// Scene payloads originate from an LLM, so no field can be trusted to exist
// or carry the right type. The rules here never panic on malformed input and
// never silently zero a bad value: a field either coerces cleanly, or it is
// dropped with a warning naming the scene, shape, and field.
package sanitize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lessonlab/vizboard/pkg/scene"
)

// Number coerces a raw JSON value into a finite float64.
// Accepts native numbers and numeric strings ("42", " 3.5 ").
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, finite(n)
	case float32:
		return float64(n), finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && finite(f)
	default:
		return 0, false
	}
}

// String coerces a raw JSON value into a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool coerces a raw JSON value into a bool.
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// NumberSlice coerces a raw JSON value into a slice of finite numbers.
// Every element must coerce; a single bad element rejects the whole slice.
func NumberSlice(v any) ([]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, el := range raw {
		f, ok := Number(el)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// PropsMap coerces a raw JSON value into a property map, passed through to
// the renderer opaquely.
func PropsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// warn builds a Warning scoped to one shape (or animation) of one scene.
// Pass shape = -1 for scene-level warnings.
func warn(sceneIdx, shapeIdx int, field, message string) scene.Warning {
	return scene.Warning{
		Scene:   sceneIdx,
		Shape:   shapeIdx,
		Field:   field,
		Message: message,
	}
}

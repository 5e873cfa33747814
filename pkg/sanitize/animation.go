package sanitize

import (
	"fmt"

	"github.com/lessonlab/vizboard/pkg/scene"
)

// DefaultAnimationDuration is used when an animation omits its duration.
const DefaultAnimationDuration = 1.0

// Animation validates one raw animation record against the final shape list
// of its scene.
//
// shapeCount is the number of shapes that survived sanitization; animation
// binding happens only after shape filtering, so the index refers to the
// post-filter list. Returns ok=false when the animation is dropped entirely
// (unknown type or out-of-range shape index).
func Animation(raw map[string]any, shapeCount, sceneIdx, animIdx int) (scene.Animation, []scene.Warning, bool) {
	var warnings []scene.Warning

	typ, ok := String(raw["type"])
	if !ok || !scene.ValidAnimationTypes[typ] {
		warnings = append(warnings, warn(sceneIdx, -1, "type",
			fmt.Sprintf("animation %d: unknown type %v, dropped", animIdx, raw["type"])))
		return scene.Animation{}, warnings, false
	}

	idx, ok := Number(raw["shape_index"])
	shapeIndex := int(idx)
	if !ok || shapeIndex < 0 || shapeIndex >= shapeCount {
		warnings = append(warnings, warn(sceneIdx, -1, "shape_index",
			fmt.Sprintf("animation %d: shape index %v out of range [0, %d), dropped",
				animIdx, raw["shape_index"], shapeCount)))
		return scene.Animation{}, warnings, false
	}

	anim := scene.Animation{
		ShapeIndex: shapeIndex,
		Type:       typ,
		Duration:   DefaultAnimationDuration,
	}

	// Duration and delay follow the same coerce-or-drop rule as shape fields.
	if v, present := raw["duration"]; present {
		if d, ok := Number(v); ok && d > 0 {
			anim.Duration = d
		} else {
			warnings = append(warnings, warn(sceneIdx, -1, "duration",
				fmt.Sprintf("animation %d: invalid duration %v, using default", animIdx, v)))
		}
	}
	if v, present := raw["delay"]; present {
		if d, ok := Number(v); ok && d >= 0 {
			anim.Delay = d
		} else {
			warnings = append(warnings, warn(sceneIdx, -1, "delay",
				fmt.Sprintf("animation %d: invalid delay %v, dropped", animIdx, v)))
		}
	}

	// Easing names are the renderer's vocabulary; passed through opaquely.
	if s, ok := String(raw["ease"]); ok {
		anim.Ease = s
	}
	if m, ok := PropsMap(raw["from_props"]); ok {
		anim.FromProps = m
	}
	if m, ok := PropsMap(raw["to_props"]); ok {
		anim.ToProps = m
	}

	// Motion path data follows the points rule: flat even-length numbers.
	if v, present := raw["path"]; present {
		pts, ok := NumberSlice(v)
		if !ok || len(pts)%2 != 0 {
			warnings = append(warnings, warn(sceneIdx, -1, "path",
				fmt.Sprintf("animation %d: motion path must be a flat, even-length list of numbers; dropped", animIdx)))
		} else {
			anim.Path = pts
		}
	}

	return anim, warnings, true
}

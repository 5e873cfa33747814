package sanitize

import (
	"fmt"
	"unicode/utf8"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/layout"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// Text dimension heuristic: width per character relative to font size, and
// line height relative to font size.
const (
	textWidthFactor  = 0.6
	textHeightFactor = 1.5
	defaultFontSize  = 16.0
	defaultShapeSize = 100.0
)

// Shape validates one raw shape record and assigns it concrete canvas
// coordinates through the allocator.
//
// Returns ok=false when the whole shape is rejected (unknown type); in every
// other case a usable shape is produced and individual bad fields are dropped
// with warnings. The allocator accumulates the shape's final rectangle so
// later shapes in the same scene avoid it.
func Shape(alloc *layout.Allocator, raw map[string]any, sceneIdx, shapeIdx int) (scene.Shape, []scene.Warning, bool) {
	var warnings []scene.Warning

	typ, ok := String(raw["type"])
	if !ok || !scene.ValidShapeTypes[typ] {
		warnings = append(warnings, warn(sceneIdx, shapeIdx, "type",
			fmt.Sprintf("unknown shape type %v, shape dropped", raw["type"])))
		return scene.Shape{}, warnings, false
	}

	sh := scene.Shape{Type: typ}

	// Numeric fields: coerce-or-drop. A drop is visible in warnings rather
	// than silently defaulting to zero.
	num := func(field string) (float64, bool) {
		v, present := raw[field]
		if !present {
			return 0, false
		}
		f, ok := Number(v)
		if !ok {
			warnings = append(warnings, warn(sceneIdx, shapeIdx, field,
				fmt.Sprintf("non-numeric value %v dropped", v)))
			return 0, false
		}
		return f, true
	}

	x, hasX := num("x")
	y, hasY := num("y")
	width, hasWidth := num("width")
	height, hasHeight := num("height")

	if r, ok := num("radius"); ok {
		sh.Radius = r
	}
	if sw, ok := num("strokeWidth"); ok {
		sh.StrokeWidth = sw
	}
	if rot, ok := num("rotation"); ok {
		sh.Rotation = rot
	}
	if op, ok := num("opacity"); ok {
		if op < 0 {
			op = 0
		}
		if op > 1 {
			op = 1
		}
		sh.Opacity = &op
	}
	if fs, ok := num("fontSize"); ok {
		sh.FontSize = fs
	}
	if zi, ok := num("zIndex"); ok {
		sh.ZIndex = int(zi)
	}

	// String fields.
	str := func(field string) (string, bool) {
		v, present := raw[field]
		if !present {
			return "", false
		}
		s, ok := String(v)
		if !ok {
			warnings = append(warnings, warn(sceneIdx, shapeIdx, field,
				fmt.Sprintf("non-string value %v dropped", v)))
			return "", false
		}
		return s, true
	}

	if s, ok := str("fill"); ok {
		sh.Fill = s
	}
	if s, ok := str("stroke"); ok {
		sh.Stroke = s
	}
	if s, ok := str("text"); ok {
		sh.Text = s
	}
	if s, ok := str("fontFamily"); ok {
		sh.FontFamily = s
	}
	if s, ok := str("src"); ok {
		sh.Src = s
	}

	// Points: flat list of numbers, alternating x/y, so even length only.
	if v, present := raw["points"]; present {
		pts, ok := NumberSlice(v)
		if !ok || len(pts)%2 != 0 {
			warnings = append(warnings, warn(sceneIdx, shapeIdx, "points",
				"points must be a flat, even-length list of numbers; dropped"))
		} else {
			sh.Points = pts
		}
	}

	// Dash arrays crash renderers when malformed, so the rule is strict:
	// non-empty list of finite numbers or nothing. "dash" is accepted as an
	// alias seen in older payloads.
	for _, field := range []string{"lineDash", "dash"} {
		v, present := raw[field]
		if !present {
			continue
		}
		dash, ok := NumberSlice(v)
		if !ok || len(dash) == 0 {
			warnings = append(warnings, warn(sceneIdx, shapeIdx, field,
				"dash pattern must be a non-empty list of finite numbers; dropped"))
			continue
		}
		if sh.LineDash == nil {
			sh.LineDash = dash
		}
	}

	// Dimension inference for shapes that did not specify width/height.
	if hasWidth {
		sh.Width = width
	}
	if hasHeight {
		sh.Height = height
	}
	if !hasWidth || !hasHeight {
		iw, ih := inferDimensions(&sh)
		if !hasWidth {
			sh.Width = iw
		}
		if !hasHeight {
			sh.Height = ih
		}
	}
	if sh.Width <= 0 {
		sh.Width = defaultShapeSize
	}
	if sh.Height <= 0 {
		sh.Height = defaultShapeSize
	}

	// Placement. A declared zone routes through the allocator; explicit
	// coordinates become the preferred position. Shapes with neither are
	// centered on the canvas (the center zone) with a warning.
	zone := canvas.ZoneCenter
	zoneName, hasZone := String(raw["zone"])
	if hasZone {
		parsed, err := canvas.ParseZone(zoneName)
		if err != nil {
			warnings = append(warnings, warn(sceneIdx, shapeIdx, "zone",
				fmt.Sprintf("unknown zone %q, centering on canvas", zoneName)))
			hasZone = false
		} else {
			zone = parsed
		}
	}
	if !hasZone {
		warnings = append(warnings, warn(sceneIdx, shapeIdx, "zone",
			"no zone specified, placing in canvas center"))
	}

	var placement layout.Placement
	if hasX && hasY {
		placement = alloc.AllocateAt(zone, sh.Width, sh.Height, x, y)
	} else {
		placement = alloc.Allocate(zone, sh.Width, sh.Height)
	}
	if placement.Fallback {
		warnings = append(warnings, warn(sceneIdx, shapeIdx, "",
			fmt.Sprintf("zone %s has no free slot, shape centered with overlap", zone)))
	}
	sh.X = placement.X
	sh.Y = placement.Y

	// Final clamp: nothing renders off-canvas regardless of upstream error.
	clamped := alloc.Canvas().Clamp(sh.Bounds())
	sh.X = clamped.X
	sh.Y = clamped.Y

	return sh, warnings, true
}

// inferDimensions derives width/height for shapes that omitted them:
// circles from their radius, text from a font-size heuristic, everything
// else a fixed default square.
func inferDimensions(sh *scene.Shape) (width, height float64) {
	if sh.Radius > 0 {
		return 2 * sh.Radius, 2 * sh.Radius
	}
	if sh.Type == scene.ShapeText && sh.Text != "" {
		size := sh.FontSize
		if size <= 0 {
			size = defaultFontSize
			sh.FontSize = size
		}
		return textWidthFactor * size * float64(utf8.RuneCountInString(sh.Text)), textHeightFactor * size
	}
	return defaultShapeSize, defaultShapeSize
}

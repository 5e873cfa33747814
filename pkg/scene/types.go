package scene

import "github.com/lessonlab/vizboard/pkg/canvas"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Shape types understood by the renderer.
const (
	ShapeCircle    = "circle"
	ShapeRectangle = "rectangle"
	ShapeLine      = "line"
	ShapeArrow     = "arrow"
	ShapeText      = "text"
	ShapeImage     = "image"
	ShapePath      = "path"
	ShapeGroup     = "group"
	ShapePolygon   = "polygon"
	ShapeIcon      = "icon"
)

// ValidShapeTypes is the set of supported shape types.
var ValidShapeTypes = map[string]bool{
	ShapeCircle:    true,
	ShapeRectangle: true,
	ShapeLine:      true,
	ShapeArrow:     true,
	ShapeText:      true,
	ShapeImage:     true,
	ShapePath:      true,
	ShapeGroup:     true,
	ShapePolygon:   true,
	ShapeIcon:      true,
}

// Animation types understood by the renderer.
const (
	AnimFadeIn  = "fadeIn"
	AnimFadeOut = "fadeOut"
	AnimDraw    = "draw"
	AnimMove    = "move"
	AnimRotate  = "rotate"
	AnimScale   = "scale"
	AnimPulse   = "pulse"
	AnimGlow    = "glow"
	AnimWrite   = "write"
	AnimOrbit   = "orbit"
	AnimMorph   = "morph"
)

// ValidAnimationTypes is the set of supported animation types.
var ValidAnimationTypes = map[string]bool{
	AnimFadeIn:  true,
	AnimFadeOut: true,
	AnimDraw:    true,
	AnimMove:    true,
	AnimRotate:  true,
	AnimScale:   true,
	AnimPulse:   true,
	AnimGlow:    true,
	AnimWrite:   true,
	AnimOrbit:   true,
	AnimMorph:   true,
}

// Scene duration limits in seconds.
const (
	MinSceneDuration     = 1.0
	MaxSceneDuration     = 60.0
	DefaultSceneDuration = 10.0
)

// =============================================================================
// Shape - One Drawable Element
// =============================================================================

// Shape is a single drawable element with concrete pixel coordinates.
// After processing, X/Y/Width/Height are always set and canvas-bounded;
// zone-relative positioning never leaks into the output.
type Shape struct {
	Type string `json:"type" bson:"type"`

	// Position and size in canvas pixel space.
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Radius float64 `json:"radius,omitempty" bson:"radius,omitempty"`

	// Style
	Fill        string   `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty" bson:"stroke,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty" bson:"stroke_width,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Rotation    float64  `json:"rotation,omitempty" bson:"rotation,omitempty"`
	ZIndex      int      `json:"zIndex,omitempty" bson:"z_index,omitempty"`
	LineDash    []float64 `json:"lineDash,omitempty" bson:"line_dash,omitempty"`

	// Content
	Text       string    `json:"text,omitempty" bson:"text,omitempty"`
	FontSize   float64   `json:"fontSize,omitempty" bson:"font_size,omitempty"`
	FontFamily string    `json:"fontFamily,omitempty" bson:"font_family,omitempty"`
	Points     []float64 `json:"points,omitempty" bson:"points,omitempty"`
	Src        string    `json:"src,omitempty" bson:"src,omitempty"`
}

// Bounds returns the shape's bounding rectangle.
func (s Shape) Bounds() canvas.Rect {
	return canvas.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// =============================================================================
// Animation - Timeline Entry Bound to a Shape
// =============================================================================

// Animation animates one shape, referenced by its zero-based index into the
// scene's shape list. Easing names and property maps are passed through to
// the renderer opaquely.
type Animation struct {
	ShapeIndex int            `json:"shape_index" bson:"shape_index"`
	Type       string         `json:"type" bson:"type"`
	Duration   float64        `json:"duration" bson:"duration"`
	Delay      float64        `json:"delay" bson:"delay"`
	Ease       string         `json:"ease,omitempty" bson:"ease,omitempty"`
	FromProps  map[string]any `json:"from_props,omitempty" bson:"from_props,omitempty"`
	ToProps    map[string]any `json:"to_props,omitempty" bson:"to_props,omitempty"`
	Path       []float64      `json:"path,omitempty" bson:"path,omitempty"`
}

// =============================================================================
// Audio - Narration Sync Block
// =============================================================================

// TTSConfig selects the synthesized narration voice.
type TTSConfig struct {
	Voice string  `json:"voice" bson:"voice"`
	Speed float64 `json:"speed" bson:"speed"`
	Pitch float64 `json:"pitch" bson:"pitch"`
}

// DefaultTTSConfig returns the neutral voice used when a scene's audio block
// does not specify one.
func DefaultTTSConfig() TTSConfig {
	return TTSConfig{Voice: "en-US-neutral", Speed: 1.0, Pitch: 0}
}

// Audio synchronizes narration text with the scene timeline.
type Audio struct {
	Text      string    `json:"text" bson:"text"`
	StartTime float64   `json:"start_time" bson:"start_time"`
	Duration  float64   `json:"duration" bson:"duration"`
	TTS       TTSConfig `json:"tts_config" bson:"tts_config"`
}

// =============================================================================
// Effects - Scene-Wide Visual Configuration
// =============================================================================

// Effects holds scene-wide background and glow configuration.
type Effects struct {
	Background string `json:"background,omitempty" bson:"background,omitempty"`
	Glow       bool   `json:"glow,omitempty" bson:"glow,omitempty"`
}

// =============================================================================
// Scene - One Timed Unit of the Visualization
// =============================================================================

// Scene is one processed, render-ready unit of a visualization.
// Scenes are immutable once processing completes.
type Scene struct {
	ID         string      `json:"scene_id" bson:"scene_id"`
	Title      string      `json:"title,omitempty" bson:"title,omitempty"`
	Duration   float64     `json:"duration" bson:"duration"`
	Shapes     []Shape     `json:"shapes" bson:"shapes"`
	Animations []Animation `json:"animations" bson:"animations"`
	Effects    *Effects    `json:"effects,omitempty" bson:"effects,omitempty"`
	Audio      *Audio      `json:"audio,omitempty" bson:"audio,omitempty"`
}

// =============================================================================
// Warnings and Errors - First-Class Diagnostics
// =============================================================================

// Warning records a single auto-correction applied during processing: a
// coerced field, a dropped element, or an overlap-accepting fallback
// placement. Warnings ride alongside the output so callers can see exactly
// what was fixed up in a bad upstream payload.
type Warning struct {
	Scene   int    `json:"scene" bson:"scene"`
	Shape   int    `json:"shape" bson:"shape"` // -1 when not shape-scoped
	Field   string `json:"field,omitempty" bson:"field,omitempty"`
	Message string `json:"message" bson:"message"`
}

// SceneError records a scene that failed processing entirely and was skipped.
type SceneError struct {
	Scene   int    `json:"scene" bson:"scene"`
	SceneID string `json:"scene_id,omitempty" bson:"scene_id,omitempty"`
	Message string `json:"message" bson:"message"`
}

// =============================================================================
// Visualization - Assembled Response
// =============================================================================

// Visualization is the renderer-ready output of one processing request.
type Visualization struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty"`
	Scenes        []Scene       `json:"scenes" bson:"scenes"`
	TotalDuration float64       `json:"total_duration" bson:"total_duration"`
	Canvas        canvas.Canvas `json:"canvas" bson:"canvas"`
	Errors        []SceneError  `json:"errors" bson:"errors"`
	Warnings      []Warning     `json:"warnings" bson:"warnings"`
}

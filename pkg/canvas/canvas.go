// Package canvas defines the drawing surface and the fixed 3x3 zone grid used
// for relative positioning of scene shapes.
//
// The canvas is immutable configuration: dimensions, outer padding, and the
// spacing between zones. All geometric queries (zone bounds, rectangle
// overlap, clamping) are pure functions of that configuration, so the same
// canvas always yields the same coordinates.
package canvas

// =============================================================================
// Defaults - Single Source of Truth
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1920.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 1080.0

	// DefaultPadding is the outer margin kept free of shapes.
	DefaultPadding = 50.0

	// DefaultZoneSpacing is the gap between adjacent zones.
	DefaultZoneSpacing = 20.0
)

// =============================================================================
// Rect - Axis-Aligned Rectangle
// =============================================================================

// Rect is an axis-aligned rectangle in canvas pixel space.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Overlaps reports whether r and other share any interior area.
// Rectangles that merely touch at an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	if r.Right() <= other.X || other.Right() <= r.X {
		return false
	}
	if r.Bottom() <= other.Y || other.Bottom() <= r.Y {
		return false
	}
	return true
}

// RectsOverlap reports whether two rectangles share any interior area.
// Edge-touching rectangles (a.X+a.Width == b.X) are not overlapping.
func RectsOverlap(a, b Rect) bool {
	return a.Overlaps(b)
}

// =============================================================================
// Canvas - Immutable Surface Configuration
// =============================================================================

// Canvas describes the drawing surface shapes are placed on.
// The zero value is not usable; construct with Default or fill all fields.
type Canvas struct {
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	Padding     float64 `json:"padding" bson:"padding"`
	ZoneSpacing float64 `json:"zone_spacing" bson:"zone_spacing"`
}

// Default returns the standard 1920x1080 canvas configuration.
func Default() Canvas {
	return Canvas{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Padding:     DefaultPadding,
		ZoneSpacing: DefaultZoneSpacing,
	}
}

// ZoneWidth returns the width of a single grid zone.
func (c Canvas) ZoneWidth() float64 {
	return (c.Width - 2*c.Padding - 2*c.ZoneSpacing) / 3
}

// ZoneHeight returns the height of a single grid zone.
func (c Canvas) ZoneHeight() float64 {
	return (c.Height - 2*c.Padding - 2*c.ZoneSpacing) / 3
}

// Bounds returns the usable area of the canvas: the full surface minus the
// outer padding. Every processed shape lies inside this rectangle.
func (c Canvas) Bounds() Rect {
	return Rect{
		X:      c.Padding,
		Y:      c.Padding,
		Width:  c.Width - 2*c.Padding,
		Height: c.Height - 2*c.Padding,
	}
}

// Clamp shifts r so it lies fully inside the canvas bounds.
// Rectangles larger than the usable area are pinned to the padding origin.
func (c Canvas) Clamp(r Rect) Rect {
	if r.X < c.Padding {
		r.X = c.Padding
	}
	if r.X+r.Width > c.Width-c.Padding {
		r.X = c.Width - c.Padding - r.Width
	}
	if r.X < c.Padding {
		r.X = c.Padding
	}
	if r.Y < c.Padding {
		r.Y = c.Padding
	}
	if r.Y+r.Height > c.Height-c.Padding {
		r.Y = c.Height - c.Padding - r.Height
	}
	if r.Y < c.Padding {
		r.Y = c.Padding
	}
	return r
}

// Validate checks that the canvas configuration can host the zone grid.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errInvalid("canvas dimensions must be positive")
	}
	if c.Padding < 0 || c.ZoneSpacing < 0 {
		return errInvalid("padding and zone spacing cannot be negative")
	}
	if c.ZoneWidth() <= 0 || c.ZoneHeight() <= 0 {
		return errInvalid("canvas too small for the 3x3 zone grid")
	}
	return nil
}

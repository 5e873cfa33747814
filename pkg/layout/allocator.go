// Package layout computes non-overlapping shape placements inside canvas
// zones.
//
// The allocator is the only stateful piece of the scene engine: it remembers
// every rectangle placed in each zone so later shapes in the same scene avoid
// them. State is scoped to a single scene; callers must Reset between scenes
// and must not share an allocator across concurrent requests.
//
// Placement is first-fit, not best-fit: candidates are scanned on a coarse
// raster from the zone's top-left corner and the first free slot wins. The
// scan is fully deterministic - no randomness and no map iteration order
// feeds into the result.
package layout

import "github.com/lessonlab/vizboard/pkg/canvas"

// ScanStep is the raster granularity of the free-slot search, in pixels.
const ScanStep = 10.0

// Placement is the result of one allocation.
type Placement struct {
	X float64
	Y float64

	// Fallback is true when no free slot existed and the rectangle was
	// centered in the zone, accepting overlap.
	Fallback bool
}

// Allocator tracks occupied rectangles per zone for one scene.
type Allocator struct {
	canvas   canvas.Canvas
	occupied map[canvas.Zone][]canvas.Rect
}

// New creates an allocator for the given canvas with no occupied space.
func New(c canvas.Canvas) *Allocator {
	return &Allocator{
		canvas:   c,
		occupied: make(map[canvas.Zone][]canvas.Rect),
	}
}

// Reset clears all zone occupancy. Call once before each scene.
func (a *Allocator) Reset() {
	a.occupied = make(map[canvas.Zone][]canvas.Rect)
}

// Canvas returns the canvas this allocator places shapes on.
func (a *Allocator) Canvas() canvas.Canvas { return a.canvas }

// Allocated returns the rectangles currently occupying a zone, in the order
// they were placed.
func (a *Allocator) Allocated(zone canvas.Zone) []canvas.Rect {
	return a.occupied[zone]
}

// Allocate places a width x height rectangle in the zone without a preferred
// position. The zone's center is tried first, then the raster scan.
func (a *Allocator) Allocate(zone canvas.Zone, width, height float64) Placement {
	bounds := a.canvas.ZoneBounds(zone)
	cx := bounds.X + (bounds.Width-width)/2
	cy := bounds.Y + (bounds.Height-height)/2
	return a.AllocateAt(zone, width, height, cx, cy)
}

// AllocateAt places a width x height rectangle in the zone, preferring the
// given position.
//
// Order of preference:
//  1. The preferred position, if it does not overlap existing allocations.
//  2. The first free slot found scanning the zone on a ScanStep raster from
//     its top-left corner.
//  3. Centered in the zone, accepting overlap (Fallback is set).
//
// The chosen rectangle is recorded so subsequent allocations in the same
// zone respect it.
func (a *Allocator) AllocateAt(zone canvas.Zone, width, height, preferredX, preferredY float64) Placement {
	bounds := a.canvas.ZoneBounds(zone)
	taken := a.occupied[zone]

	preferred := canvas.Rect{X: preferredX, Y: preferredY, Width: width, Height: height}
	if !overlapsAny(preferred, taken) {
		a.record(zone, preferred)
		return Placement{X: preferred.X, Y: preferred.Y}
	}

	if slot, ok := a.scan(bounds, width, height, taken); ok {
		a.record(zone, slot)
		return Placement{X: slot.X, Y: slot.Y}
	}

	// Zone is full: center the rectangle and accept the overlap rather than
	// failing the shape.
	fallback := canvas.Rect{
		X:      bounds.X + (bounds.Width-width)/2,
		Y:      bounds.Y + (bounds.Height-height)/2,
		Width:  width,
		Height: height,
	}
	a.record(zone, fallback)
	return Placement{X: fallback.X, Y: fallback.Y, Fallback: true}
}

// scan walks the zone on a coarse raster, top-left to bottom-right, and
// returns the first candidate rectangle free of overlaps.
func (a *Allocator) scan(bounds canvas.Rect, width, height float64, taken []canvas.Rect) (canvas.Rect, bool) {
	for y := bounds.Y; y+height <= bounds.Bottom(); y += ScanStep {
		for x := bounds.X; x+width <= bounds.Right(); x += ScanStep {
			candidate := canvas.Rect{X: x, Y: y, Width: width, Height: height}
			if !overlapsAny(candidate, taken) {
				return candidate, true
			}
		}
	}
	return canvas.Rect{}, false
}

func (a *Allocator) record(zone canvas.Zone, r canvas.Rect) {
	a.occupied[zone] = append(a.occupied[zone], r)
}

func overlapsAny(r canvas.Rect, taken []canvas.Rect) bool {
	for _, t := range taken {
		if r.Overlaps(t) {
			return true
		}
	}
	return false
}

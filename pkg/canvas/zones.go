package canvas

import "github.com/lessonlab/vizboard/pkg/errors"

// Zone is one of the nine named regions of the 3x3 canvas grid.
// Zones give upstream scene generators a coarse, resolution-independent way
// to position shapes without knowing pixel coordinates.
type Zone string

// The nine layout zones, arranged as a 3x3 grid.
const (
	ZoneTopLeft      Zone = "top_left"
	ZoneTopCenter    Zone = "top_center"
	ZoneTopRight     Zone = "top_right"
	ZoneCenterLeft   Zone = "center_left"
	ZoneCenter       Zone = "center"
	ZoneCenterRight  Zone = "center_right"
	ZoneBottomLeft   Zone = "bottom_left"
	ZoneBottomCenter Zone = "bottom_center"
	ZoneBottomRight  Zone = "bottom_right"
)

// zoneGrid maps each zone to its (column, row) cell in {0,1,2}x{0,1,2}.
var zoneGrid = map[Zone][2]int{
	ZoneTopLeft:      {0, 0},
	ZoneTopCenter:    {1, 0},
	ZoneTopRight:     {2, 0},
	ZoneCenterLeft:   {0, 1},
	ZoneCenter:       {1, 1},
	ZoneCenterRight:  {2, 1},
	ZoneBottomLeft:   {0, 2},
	ZoneBottomCenter: {1, 2},
	ZoneBottomRight:  {2, 2},
}

// Zones returns all nine zones in reading order (left to right, top to bottom).
func Zones() []Zone {
	return []Zone{
		ZoneTopLeft, ZoneTopCenter, ZoneTopRight,
		ZoneCenterLeft, ZoneCenter, ZoneCenterRight,
		ZoneBottomLeft, ZoneBottomCenter, ZoneBottomRight,
	}
}

// ValidZone reports whether s names a known zone.
func ValidZone(s string) bool {
	_, ok := zoneGrid[Zone(s)]
	return ok
}

// ParseZone converts a raw string into a Zone, failing on unknown names.
func ParseZone(s string) (Zone, error) {
	if !ValidZone(s) {
		return "", errors.New(errors.ErrCodeInvalidZone, "unknown zone: %q", s)
	}
	return Zone(s), nil
}

// ZoneBounds returns the pixel-space rectangle of a zone on canvas c.
// The result is always fully inside the canvas bounds minus padding.
func (c Canvas) ZoneBounds(z Zone) Rect {
	cell, ok := zoneGrid[z]
	if !ok {
		// Unknown zones fall back to the center cell so callers that bypass
		// ParseZone still get an in-bounds rectangle.
		cell = zoneGrid[ZoneCenter]
	}
	col, row := float64(cell[0]), float64(cell[1])
	return Rect{
		X:      c.Padding + col*(c.ZoneWidth()+c.ZoneSpacing),
		Y:      c.Padding + row*(c.ZoneHeight()+c.ZoneSpacing),
		Width:  c.ZoneWidth(),
		Height: c.ZoneHeight(),
	}
}

// errInvalid builds an invalid-config error.
func errInvalid(msg string) error {
	return errors.New(errors.ErrCodeInvalidConfig, "%s", msg)
}

package canvas

import "testing"

func TestZoneBoundsInsidePadding(t *testing.T) {
	c := Default()
	bounds := c.Bounds()

	for _, z := range Zones() {
		t.Run(string(z), func(t *testing.T) {
			r := c.ZoneBounds(z)
			if r.X < bounds.X || r.Y < bounds.Y {
				t.Errorf("zone %s origin (%.1f, %.1f) outside padding", z, r.X, r.Y)
			}
			if r.Right() > bounds.Right()+1e-9 || r.Bottom() > bounds.Bottom()+1e-9 {
				t.Errorf("zone %s extends to (%.1f, %.1f), beyond usable area (%.1f, %.1f)",
					z, r.Right(), r.Bottom(), bounds.Right(), bounds.Bottom())
			}
			if r.Width != c.ZoneWidth() || r.Height != c.ZoneHeight() {
				t.Errorf("zone %s size = %.1fx%.1f, want %.1fx%.1f",
					z, r.Width, r.Height, c.ZoneWidth(), c.ZoneHeight())
			}
		})
	}
}

func TestZoneBoundsDistinct(t *testing.T) {
	c := Default()
	for i, a := range Zones() {
		for j, b := range Zones() {
			if i == j {
				continue
			}
			if RectsOverlap(c.ZoneBounds(a), c.ZoneBounds(b)) {
				t.Errorf("zones %s and %s overlap", a, b)
			}
		}
	}
}

func TestRectsOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "Identical",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			want: true,
		},
		{
			name: "PartialOverlap",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 5, Y: 5, Width: 10, Height: 10},
			want: true,
		},
		{
			name: "EdgeTouchingHorizontal",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 10, Y: 0, Width: 10, Height: 10},
			want: false,
		},
		{
			name: "EdgeTouchingVertical",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 0, Y: 10, Width: 10, Height: 10},
			want: false,
		},
		{
			name: "CornerTouching",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 10, Y: 10, Width: 10, Height: 10},
			want: false,
		},
		{
			name: "FullyLeft",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 20, Y: 0, Width: 10, Height: 10},
			want: false,
		},
		{
			name: "FullyAbove",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 0, Y: 30, Width: 10, Height: 10},
			want: false,
		},
		{
			name: "Contained",
			a:    Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:    Rect{X: 40, Y: 40, Width: 10, Height: 10},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectsOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("RectsOverlap(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Symmetric
			if got := RectsOverlap(tt.b, tt.a); got != tt.want {
				t.Errorf("RectsOverlap(%+v, %+v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		in    Rect
		wantX float64
		wantY float64
	}{
		{
			name:  "AlreadyInside",
			in:    Rect{X: 100, Y: 100, Width: 50, Height: 50},
			wantX: 100, wantY: 100,
		},
		{
			name:  "PastLeft",
			in:    Rect{X: -20, Y: 100, Width: 50, Height: 50},
			wantX: c.Padding, wantY: 100,
		},
		{
			name:  "PastRight",
			in:    Rect{X: 1900, Y: 100, Width: 100, Height: 50},
			wantX: c.Width - c.Padding - 100, wantY: 100,
		},
		{
			name:  "PastBottom",
			in:    Rect{X: 100, Y: 1070, Width: 50, Height: 100},
			wantX: 100, wantY: c.Height - c.Padding - 100,
		},
		{
			name:  "OversizedPinsToOrigin",
			in:    Rect{X: 500, Y: 500, Width: 5000, Height: 5000},
			wantX: c.Padding, wantY: c.Padding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Clamp(tt.in)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("Clamp(%+v) = (%.1f, %.1f), want (%.1f, %.1f)",
					tt.in, got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestParseZone(t *testing.T) {
	if _, err := ParseZone("center"); err != nil {
		t.Errorf("ParseZone(center): %v", err)
	}
	if _, err := ParseZone("middle"); err == nil {
		t.Error("ParseZone(middle): expected error")
	}
	if ValidZone("sideways") {
		t.Error("ValidZone(sideways) = true")
	}
}

func TestCanvasValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate(): %v", err)
	}
	bad := Canvas{Width: 100, Height: 100, Padding: 60, ZoneSpacing: 20}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for canvas too small for grid")
	}
}

package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/scene"
)

const (
	defaultFill   = "#d0d0d0"
	defaultStroke = "#333333"
	zoneStroke    = "#c0c8d8"
	labelFill     = "#8090a8"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	showZones  bool
	background string
}

// WithZoneGrid overlays the nine zone boundaries and their names.
func WithZoneGrid() SVGOption { return func(r *svgRenderer) { r.showZones = true } }

// WithBackground sets the canvas background color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSceneSVG renders one processed scene as a static SVG document.
// Shapes are emitted in slice order, so output is deterministic for a
// given scene.
func RenderSceneSVG(c canvas.Canvas, sc scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if sc.Effects != nil && sc.Effects.Background != "" {
		r.background = sc.Effects.Background
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		c.Width, c.Height, c.Width, c.Height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		c.Width, c.Height, r.background)

	if r.showZones {
		renderZoneGrid(&buf, c)
	}
	for i := range sc.Shapes {
		renderShape(&buf, &sc.Shapes[i])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderZoneGrid(buf *bytes.Buffer, c canvas.Canvas) {
	for _, zone := range canvas.Zones() {
		b := c.ZoneBounds(zone)
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="6 4"/>`+"\n",
			b.X, b.Y, b.Width, b.Height, zoneStroke)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="14" fill="%s">%s</text>`+"\n",
			b.X+6, b.Y+18, labelFill, zone)
	}
}

func renderShape(buf *bytes.Buffer, sh *scene.Shape) {
	fill := sh.Fill
	if fill == "" {
		fill = defaultFill
	}
	stroke := sh.Stroke
	if stroke == "" {
		stroke = defaultStroke
	}

	switch sh.Type {
	case scene.ShapeCircle:
		cx := sh.X + sh.Width/2
		cy := sh.Y + sh.Height/2
		radius := sh.Radius
		if radius <= 0 {
			radius = sh.Width / 2
		}
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`+"\n",
			cx, cy, radius, fill, stroke)

	case scene.ShapeLine, scene.ShapeArrow:
		x2 := sh.X + sh.Width
		y2 := sh.Y + sh.Height
		if len(sh.Points) >= 4 {
			x2, y2 = sh.Points[2], sh.Points[3]
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			sh.X, sh.Y, x2, y2, stroke, max(sh.StrokeWidth, 1))

	case scene.ShapeText:
		size := sh.FontSize
		if size <= 0 {
			size = 16
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="%s">%s</text>`+"\n",
			sh.X, sh.Y+size, size, stroke, html.EscapeString(sh.Text))

	case scene.ShapePolygon, scene.ShapePath:
		if len(sh.Points) >= 4 {
			fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s"/>`+"\n",
				formatPoints(sh.Points), stroke)
			return
		}
		fallthrough

	default:
		// Rectangles, images, groups and icons preview as their bounding box.
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
			sh.X, sh.Y, sh.Width, sh.Height, fill, stroke)
	}
}

func formatPoints(points []float64) string {
	var buf bytes.Buffer
	for i := 0; i+1 < len(points); i += 2 {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.1f,%.1f", points[i], points[i+1])
	}
	return buf.String()
}

package pipeline

import (
	"unicode/utf8"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// FallbackScene synthesizes a minimal single-scene visualization: a centered
// circle with the title text beneath it, both fading in. Downstream renderers
// always receive something renderable even when the whole request was
// unusable.
func FallbackScene(c canvas.Canvas, title string) scene.Scene {
	const radius = 80.0

	circle := scene.Shape{
		Type:   scene.ShapeCircle,
		Radius: radius,
		Width:  2 * radius,
		Height: 2 * radius,
		Fill:   "#4a90d9",
		X:      (c.Width - 2*radius) / 2,
		Y:      (c.Height-2*radius)/2 - 60,
	}

	const fontSize = 36.0
	textWidth := textWidthFactor(fontSize, utf8.RuneCountInString(title))
	text := scene.Shape{
		Type:     scene.ShapeText,
		Text:     title,
		FontSize: fontSize,
		Fill:     "#ffffff",
		Width:    textWidth,
		Height:   1.5 * fontSize,
		X:        (c.Width - textWidth) / 2,
		Y:        circle.Y + circle.Height + 40,
	}

	return scene.Scene{
		ID:       "fallback",
		Title:    title,
		Duration: scene.DefaultSceneDuration,
		Shapes:   []scene.Shape{circle, text},
		Animations: []scene.Animation{
			{ShapeIndex: 0, Type: scene.AnimFadeIn, Duration: 1, Delay: 0},
			{ShapeIndex: 1, Type: scene.AnimFadeIn, Duration: 1, Delay: 0.5},
		},
	}
}

func textWidthFactor(fontSize float64, chars int) float64 {
	w := 0.6 * fontSize * float64(chars)
	if w <= 0 {
		w = fontSize
	}
	return w
}

package pipeline

import (
	"fmt"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/layout"
	"github.com/lessonlab/vizboard/pkg/sanitize"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// Processor converts raw scenes into processed ones, one at a time.
//
// A Processor owns one coordinate allocator and the scene-id dedup table for
// a single request. It must not be shared across concurrent requests; each
// request constructs its own.
type Processor struct {
	canvas canvas.Canvas
	alloc  *layout.Allocator
	seen   map[string]bool
}

// NewProcessor creates a processor for one request on the given canvas.
func NewProcessor(c canvas.Canvas) *Processor {
	return &Processor{
		canvas: c,
		alloc:  layout.New(c),
		seen:   make(map[string]bool),
	}
}

// ProcessScene validates and lays out one raw scene.
//
// Shapes are sanitized in array order and rejected shapes are omitted;
// animation binding therefore happens only after the whole shape list is
// final, against post-filter indices. A panic while processing is recovered
// and reported as a scene-level error so one broken scene never aborts the
// request.
func (p *Processor) ProcessScene(raw map[string]any, sceneIdx int) (out scene.Scene, warnings []scene.Warning, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeInternal, "scene %d: %v", sceneIdx, r)
		}
	}()

	// Fresh zone occupancy per scene: shapes in different scenes never
	// interact.
	p.alloc.Reset()

	out = scene.Scene{
		Shapes:     []scene.Shape{},
		Animations: []scene.Animation{},
	}

	id, _ := sanitize.String(raw["scene_id"])
	if id == "" {
		id = fmt.Sprintf("scene_%d", sceneIdx+1)
	}
	out.ID = p.dedupID(id)

	if title, ok := sanitize.String(raw["title"]); ok {
		out.Title = title
	}

	duration, durWarnings := clampDuration(raw["duration"], sceneIdx)
	out.Duration = duration
	warnings = append(warnings, durWarnings...)

	// Shapes, in array order. Order matters: it defines the indices
	// animations reference.
	if rawShapes, ok := raw["shapes"].([]any); ok {
		for i, el := range rawShapes {
			m, ok := el.(map[string]any)
			if !ok {
				warnings = append(warnings, scene.Warning{
					Scene: sceneIdx, Shape: i,
					Message: fmt.Sprintf("shape %d is not an object, dropped", i),
				})
				continue
			}
			sh, w, ok := sanitize.Shape(p.alloc, m, sceneIdx, i)
			warnings = append(warnings, w...)
			if ok {
				out.Shapes = append(out.Shapes, sh)
			}
		}
	}

	// Animations, validated against the final shape list.
	if rawAnims, ok := raw["animations"].([]any); ok {
		for i, el := range rawAnims {
			m, ok := el.(map[string]any)
			if !ok {
				warnings = append(warnings, scene.Warning{
					Scene: sceneIdx, Shape: -1,
					Message: fmt.Sprintf("animation %d is not an object, dropped", i),
				})
				continue
			}
			anim, w, ok := sanitize.Animation(m, len(out.Shapes), sceneIdx, i)
			warnings = append(warnings, w...)
			if ok {
				out.Animations = append(out.Animations, anim)
			}
		}
	}

	if effects, ok := raw["effects"].(map[string]any); ok {
		out.Effects = buildEffects(effects)
	}
	if audio, ok := raw["audio"].(map[string]any); ok {
		out.Audio = buildAudio(audio, out.Duration)
	}

	return out, warnings, nil
}

// dedupID makes scene ids unique within the request by suffixing an
// incrementing counter: "intro", "intro_2", "intro_3", ...
func (p *Processor) dedupID(id string) string {
	unique := id
	for n := 2; p.seen[unique]; n++ {
		unique = fmt.Sprintf("%s_%d", id, n)
	}
	p.seen[unique] = true
	return unique
}

// clampDuration coerces a raw duration into [MinSceneDuration,
// MaxSceneDuration], defaulting when missing or non-numeric.
func clampDuration(v any, sceneIdx int) (float64, []scene.Warning) {
	var warnings []scene.Warning

	if v == nil {
		return scene.DefaultSceneDuration, nil
	}
	d, ok := sanitize.Number(v)
	if !ok {
		warnings = append(warnings, scene.Warning{
			Scene: sceneIdx, Shape: -1, Field: "duration",
			Message: fmt.Sprintf("non-numeric duration %v, using default", v),
		})
		return scene.DefaultSceneDuration, warnings
	}
	if d < scene.MinSceneDuration {
		warnings = append(warnings, scene.Warning{
			Scene: sceneIdx, Shape: -1, Field: "duration",
			Message: fmt.Sprintf("duration %v below minimum, clamped to %v", d, scene.MinSceneDuration),
		})
		return scene.MinSceneDuration, warnings
	}
	if d > scene.MaxSceneDuration {
		warnings = append(warnings, scene.Warning{
			Scene: sceneIdx, Shape: -1, Field: "duration",
			Message: fmt.Sprintf("duration %v above maximum, clamped to %v", d, scene.MaxSceneDuration),
		})
		return scene.MaxSceneDuration, warnings
	}
	return d, nil
}

// buildEffects extracts the supported scene-wide effect fields.
func buildEffects(raw map[string]any) *scene.Effects {
	fx := &scene.Effects{}
	if bg, ok := sanitize.String(raw["background"]); ok {
		fx.Background = bg
	}
	if glow, ok := sanitize.Bool(raw["glow"]); ok {
		fx.Glow = glow
	}
	return fx
}

// buildAudio assembles the narration sync block, defaulting the TTS
// configuration to a neutral voice and the narration span to the scene.
func buildAudio(raw map[string]any, sceneDuration float64) *scene.Audio {
	audio := &scene.Audio{
		Duration: sceneDuration,
		TTS:      scene.DefaultTTSConfig(),
	}
	if text, ok := sanitize.String(raw["text"]); ok {
		audio.Text = text
	}
	if start, ok := sanitize.Number(raw["start_time"]); ok && start >= 0 {
		audio.StartTime = start
	}
	if dur, ok := sanitize.Number(raw["duration"]); ok && dur > 0 {
		audio.Duration = dur
	}
	if tts, ok := raw["tts_config"].(map[string]any); ok {
		if voice, ok := sanitize.String(tts["voice"]); ok {
			audio.TTS.Voice = voice
		}
		if speed, ok := sanitize.Number(tts["speed"]); ok && speed > 0 {
			audio.TTS.Speed = speed
		}
		if pitch, ok := sanitize.Number(tts["pitch"]); ok {
			audio.TTS.Pitch = pitch
		}
	}
	return audio
}

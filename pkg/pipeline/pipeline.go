// Package pipeline implements the scene-processing pipeline for Vizboard.
//
// This package turns loosely structured scene descriptions (typically
// produced by an LLM) into a renderer-ready visualization: validated shapes
// with concrete, non-overlapping pixel coordinates, animations bound to
// surviving shape indices, and narration sync blocks.
//
// # Architecture
//
// The pipeline consists of two layers:
//
//  1. Processor: handles one scene at a time - resets zone occupancy,
//     sanitizes shapes in array order, binds animations after filtering,
//     and assembles the audio block.
//  2. Runner: orchestrates a whole request - iterates scenes, aggregates
//     warnings and per-scene errors, computes total duration, and caches
//     complete responses.
//
// Bad input degrades, it does not abort: malformed fields are coerced or
// dropped with warnings, broken scenes are skipped with errors, and only a
// request where nothing survives fails outright.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	viz, err := runner.Process(ctx, rawScenes, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := scene.MarshalVisualization(viz)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lessonlab/vizboard/pkg/canvas"
)

// DefaultFallbackTitle is used for the synthesized fallback scene when the
// request carries no usable title of its own.
const DefaultFallbackTitle = "Visualization"

// Options contains all configuration for one processing request.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Canvas overrides. Zero values take the defaults (1920x1080).
	Canvas canvas.Canvas `json:"canvas,omitempty"`

	// Fallback enables the fallback scene generator: when no scene survives
	// processing, a minimal single-scene visualization is synthesized instead
	// of failing the request.
	Fallback bool `json:"fallback,omitempty"`

	// FallbackTitle is the title text of the synthesized fallback scene.
	FallbackTitle string `json:"fallback_title,omitempty"`

	// Refresh bypasses the response cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the canvas configuration and applies
// defaults. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Canvas == (canvas.Canvas{}) {
		o.Canvas = canvas.Default()
	}
	if err := o.Canvas.Validate(); err != nil {
		return err
	}
	if o.FallbackTitle == "" {
		o.FallbackTitle = DefaultFallbackTitle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lessonlab/vizboard/pkg/cache"
	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/observability"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// Runner orchestrates visualization processing with response caching.
//
// The Runner is stateless except for the cache and logger - per-request
// state (the allocator, the scene-id table) lives in a Processor constructed
// per call. Multiple goroutines can safely use the same Runner for
// concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Process runs the pipeline over all scenes of one request.
//
// Scenes are processed in input order. A scene that fails entirely is
// recorded in the response's Errors and skipped; its duration contributes
// nothing. When zero scenes survive, Process either synthesizes the fallback
// scene (opts.Fallback) or fails with ErrCodeNoValidScenes - callers can
// always distinguish "empty but valid" from "totally broken input".
func (r *Runner) Process(ctx context.Context, rawScenes []map[string]any, opts Options) (*scene.Visualization, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	start := time.Now()
	observability.Processing().OnProcessStart(ctx, len(rawScenes))

	proc := NewProcessor(opts.Canvas)
	viz := &scene.Visualization{
		Scenes:   []scene.Scene{},
		Canvas:   opts.Canvas,
		Errors:   []scene.SceneError{},
		Warnings: []scene.Warning{},
	}

	for i, raw := range rawScenes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sc, warnings, err := proc.ProcessScene(raw, i)
		viz.Warnings = append(viz.Warnings, warnings...)
		observability.Processing().OnSceneComplete(ctx, i, len(sc.Shapes), len(warnings), err)
		if err != nil {
			id, _ := raw["scene_id"].(string)
			viz.Errors = append(viz.Errors, scene.SceneError{
				Scene:   i,
				SceneID: id,
				Message: errors.UserMessage(err),
			})
			logger.Warn("scene failed, skipping", "scene", i, "err", err)
			continue
		}

		viz.Scenes = append(viz.Scenes, sc)
		viz.TotalDuration += sc.Duration
	}

	if len(viz.Scenes) == 0 {
		if !opts.Fallback {
			return nil, errors.New(errors.ErrCodeNoValidScenes, "no valid scenes to process")
		}
		fb := FallbackScene(opts.Canvas, opts.FallbackTitle)
		viz.Scenes = append(viz.Scenes, fb)
		viz.TotalDuration = fb.Duration
		viz.Warnings = append(viz.Warnings, scene.Warning{
			Scene: -1, Shape: -1,
			Message: "no valid scenes in request, fallback scene generated",
		})
		logger.Warn("no valid scenes, generated fallback", "title", opts.FallbackTitle)
	}

	observability.Processing().OnProcessComplete(ctx, len(viz.Scenes), time.Since(start), nil)
	logger.Info("processed visualization",
		"scenes", len(viz.Scenes),
		"errors", len(viz.Errors),
		"warnings", len(viz.Warnings),
		"total_duration", viz.TotalDuration,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return viz, nil
}

// ProcessWithCacheInfo runs Process with response caching and reports
// whether the response came from cache.
//
// The cache key is the content hash of the raw scenes plus the layout-
// affecting options, so identical requests are served from cache while any
// change to scenes or canvas recomputes.
func (r *Runner) ProcessWithCacheInfo(ctx context.Context, rawScenes []map[string]any, opts Options) (*scene.Visualization, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	requestData, err := json.Marshal(rawScenes)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "serialize request for cache key")
	}
	cacheKey := r.Keyer.VisualizationKey(cache.Hash(requestData), cache.VisualizationKeyOpts{
		Width:       opts.Canvas.Width,
		Height:      opts.Canvas.Height,
		Padding:     opts.Canvas.Padding,
		ZoneSpacing: opts.Canvas.ZoneSpacing,
		Fallback:    opts.Fallback,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := scene.UnmarshalVisualization(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "visualization")
				return cached, true, nil
			}
			// Invalid cache entry - fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "visualization")
	}

	viz, err := r.Process(ctx, rawScenes, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := scene.MarshalVisualization(viz); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLVisualization)
		observability.Cache().OnCacheSet(ctx, "visualization", len(data))
	}

	return viz, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

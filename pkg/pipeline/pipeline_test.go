package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lessonlab/vizboard/pkg/canvas"
	"github.com/lessonlab/vizboard/pkg/cache"
	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/scene"
)

func quietOpts() Options {
	return Options{Logger: log.NewWithOptions(io.Discard, log.Options{})}
}

func newTestRunner() *Runner {
	return NewRunner(cache.NewNullCache(), nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestDurationClamp(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{name: "Zero", in: 0.0, want: 1},
		{name: "Negative", in: -5.0, want: 1},
		{name: "NonNumeric", in: "abc", want: 10},
		{name: "AboveMax", in: 500.0, want: 60},
		{name: "InRange", in: 15.0, want: 15},
		{name: "Missing", in: nil, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"scene_id": "s"}
			if tt.in != nil {
				raw["duration"] = tt.in
			}
			proc := NewProcessor(canvas.Default())
			sc, _, err := proc.ProcessScene(raw, 0)
			if err != nil {
				t.Fatalf("ProcessScene: %v", err)
			}
			if sc.Duration != tt.want {
				t.Errorf("duration %v -> %v, want %v", tt.in, sc.Duration, tt.want)
			}
		})
	}
}

func TestSceneIDDedup(t *testing.T) {
	proc := NewProcessor(canvas.Default())

	first, _, _ := proc.ProcessScene(map[string]any{"scene_id": "intro"}, 0)
	second, _, _ := proc.ProcessScene(map[string]any{"scene_id": "intro"}, 1)
	third, _, _ := proc.ProcessScene(map[string]any{"scene_id": "intro"}, 2)

	if first.ID != "intro" || second.ID != "intro_2" || third.ID != "intro_3" {
		t.Errorf("ids = %q, %q, %q; want intro, intro_2, intro_3", first.ID, second.ID, third.ID)
	}
}

func TestSceneIDDefault(t *testing.T) {
	proc := NewProcessor(canvas.Default())
	sc, _, _ := proc.ProcessScene(map[string]any{}, 4)
	if sc.ID != "scene_5" {
		t.Errorf("default id = %q, want scene_5", sc.ID)
	}
}

func TestAnimationIndexPruning(t *testing.T) {
	raw := map[string]any{
		"scene_id": "s",
		"shapes": []any{
			map[string]any{"type": "circle", "zone": "top_left", "radius": 30.0},
			map[string]any{"type": "nonsense"}, // dropped
			map[string]any{"type": "rectangle", "zone": "top_right"},
			map[string]any{"type": "text", "zone": "center", "text": "hi"},
		},
		"animations": []any{
			map[string]any{"type": "fadeIn", "shape_index": 0.0},
			map[string]any{"type": "fadeIn", "shape_index": 5.0}, // out of range
			map[string]any{"type": "pulse", "shape_index": 2.0},
		},
	}

	proc := NewProcessor(canvas.Default())
	sc, warnings, err := proc.ProcessScene(raw, 0)
	if err != nil {
		t.Fatalf("ProcessScene: %v", err)
	}

	if len(sc.Shapes) != 3 {
		t.Fatalf("surviving shapes = %d, want 3", len(sc.Shapes))
	}
	if len(sc.Animations) != 2 {
		t.Fatalf("surviving animations = %d, want 2", len(sc.Animations))
	}
	// Indices refer to the post-filter shape list.
	if sc.Animations[0].ShapeIndex != 0 || sc.Animations[1].ShapeIndex != 2 {
		t.Errorf("animation indices = %d, %d; want 0, 2",
			sc.Animations[0].ShapeIndex, sc.Animations[1].ShapeIndex)
	}

	found := false
	for _, w := range warnings {
		if w.Field == "shape_index" {
			found = true
		}
	}
	if !found {
		t.Error("pruned animation must be recorded as a warning")
	}
}

func TestScenarioTwoShapesSameZone(t *testing.T) {
	raw := []map[string]any{{
		"scene_id": "layout",
		"duration": 10.0,
		"shapes": []any{
			map[string]any{"type": "rectangle", "zone": "center", "width": 100.0, "height": 100.0},
			map[string]any{"type": "rectangle", "zone": "center", "width": 100.0, "height": 100.0},
		},
	}}

	viz, err := newTestRunner().Process(context.Background(), raw, quietOpts())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	shapes := viz.Scenes[0].Shapes
	if len(shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(shapes))
	}

	c := viz.Canvas
	bounds := c.ZoneBounds(canvas.ZoneCenter)
	wantX := bounds.X + (bounds.Width-100)/2
	wantY := bounds.Y + (bounds.Height-100)/2
	if shapes[0].X != wantX || shapes[0].Y != wantY {
		t.Errorf("first shape = (%.2f, %.2f), want centered (%.2f, %.2f)",
			shapes[0].X, shapes[0].Y, wantX, wantY)
	}
	if canvas.RectsOverlap(shapes[0].Bounds(), shapes[1].Bounds()) {
		t.Errorf("shapes overlap: %+v vs %+v", shapes[0].Bounds(), shapes[1].Bounds())
	}
}

func TestScenarioBadLineDash(t *testing.T) {
	raw := []map[string]any{{
		"scene_id": "dashes",
		"shapes": []any{
			map[string]any{"type": "line", "zone": "center", "lineDash": "notanarray"},
		},
	}}

	viz, err := newTestRunner().Process(context.Background(), raw, quietOpts())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if viz.Scenes[0].Shapes[0].LineDash != nil {
		t.Error("bad lineDash should have been dropped")
	}

	found := false
	for _, w := range viz.Warnings {
		if w.Field == "lineDash" {
			found = true
		}
	}
	if !found {
		t.Error("dropped lineDash must be recorded in warnings")
	}
}

func TestScenarioZeroScenes(t *testing.T) {
	_, err := newTestRunner().Process(context.Background(), nil, quietOpts())
	if !errors.Is(err, errors.ErrCodeNoValidScenes) {
		t.Errorf("Process(no scenes) = %v, want NO_VALID_SCENES", err)
	}
}

func TestFallbackScene(t *testing.T) {
	opts := quietOpts()
	opts.Fallback = true
	opts.FallbackTitle = "Photosynthesis"

	viz, err := newTestRunner().Process(context.Background(), nil, opts)
	if err != nil {
		t.Fatalf("Process with fallback: %v", err)
	}
	if len(viz.Scenes) != 1 {
		t.Fatalf("scenes = %d, want 1 fallback scene", len(viz.Scenes))
	}

	fb := viz.Scenes[0]
	if len(fb.Shapes) != 2 {
		t.Errorf("fallback shapes = %d, want circle + text", len(fb.Shapes))
	}
	if fb.Shapes[0].Type != scene.ShapeCircle || fb.Shapes[1].Type != scene.ShapeText {
		t.Errorf("fallback shape types = %s, %s", fb.Shapes[0].Type, fb.Shapes[1].Type)
	}
	if fb.Shapes[1].Text != "Photosynthesis" {
		t.Errorf("fallback title = %q", fb.Shapes[1].Text)
	}
	if len(fb.Animations) != 2 || fb.Animations[0].Type != scene.AnimFadeIn {
		t.Error("fallback shapes should fade in")
	}
	if viz.TotalDuration != fb.Duration {
		t.Errorf("total duration = %v, want %v", viz.TotalDuration, fb.Duration)
	}
}

func TestFallbackTitleWidthCountsRunes(t *testing.T) {
	c := canvas.Default()
	sc := FallbackScene(c, "光合成")

	want := 0.6 * 36 * 3 // 3 runes, not 9 bytes
	text := sc.Shapes[1]
	if text.Width != want {
		t.Errorf("title width = %v, want %v", text.Width, want)
	}
	if text.X != (c.Width-want)/2 {
		t.Errorf("title not centered: x = %v", text.X)
	}
}

func TestDeterminism(t *testing.T) {
	raw := []map[string]any{
		{
			"scene_id": "intro",
			"duration": 12.0,
			"shapes": []any{
				map[string]any{"type": "circle", "zone": "center", "radius": 40.0},
				map[string]any{"type": "circle", "zone": "center", "radius": 40.0},
				map[string]any{"type": "text", "zone": "top_center", "text": "Lesson", "fontSize": "24"},
			},
			"animations": []any{
				map[string]any{"type": "fadeIn", "shape_index": 0.0, "duration": "2"},
			},
		},
		{"scene_id": "intro", "duration": 90.0},
	}

	run := func() []byte {
		viz, err := newTestRunner().Process(context.Background(), raw, quietOpts())
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		data, err := scene.MarshalVisualization(viz)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	first := run()
	second := run()
	if !bytes.Equal(first, second) {
		t.Error("identical input must produce byte-identical output")
	}
}

func TestTotalDurationSkipsFailedScenes(t *testing.T) {
	raw := []map[string]any{
		{"scene_id": "ok", "duration": 20.0},
		{"scene_id": "alsook", "duration": 30.0},
	}

	viz, err := newTestRunner().Process(context.Background(), raw, quietOpts())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if viz.TotalDuration != 50 {
		t.Errorf("total duration = %v, want 50", viz.TotalDuration)
	}
}

func TestClampingInvariant(t *testing.T) {
	raw := []map[string]any{{
		"scene_id": "clamp",
		"shapes": []any{
			map[string]any{"type": "rectangle", "zone": "bottom_right", "x": 99999.0, "y": 99999.0, "width": 400.0, "height": 300.0},
			map[string]any{"type": "image", "x": -500.0, "y": -500.0, "width": 200.0, "height": 200.0},
		},
	}}

	viz, err := newTestRunner().Process(context.Background(), raw, quietOpts())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	c := viz.Canvas
	for i, sh := range viz.Scenes[0].Shapes {
		if sh.X < c.Padding || sh.Y < c.Padding {
			t.Errorf("shape %d at (%v, %v) violates padding", i, sh.X, sh.Y)
		}
		if sh.X+sh.Width > c.Width-c.Padding || sh.Y+sh.Height > c.Height-c.Padding {
			t.Errorf("shape %d extends past canvas bounds", i)
		}
	}
}

func TestAudioBlockDefaults(t *testing.T) {
	raw := []map[string]any{{
		"scene_id": "narrated",
		"duration": 15.0,
		"audio":    map[string]any{"text": "Welcome to the lesson."},
	}}

	viz, err := newTestRunner().Process(context.Background(), raw, quietOpts())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	audio := viz.Scenes[0].Audio
	if audio == nil {
		t.Fatal("audio block missing")
	}
	if audio.Text != "Welcome to the lesson." {
		t.Errorf("audio text = %q", audio.Text)
	}
	if audio.Duration != 15 {
		t.Errorf("audio duration = %v, want scene duration 15", audio.Duration)
	}
	if audio.TTS != scene.DefaultTTSConfig() {
		t.Errorf("tts config = %+v, want default", audio.TTS)
	}
}

func TestProcessWithCacheInfo(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, log.NewWithOptions(io.Discard, log.Options{}))
	defer runner.Close()

	raw := []map[string]any{{"scene_id": "cached", "duration": 10.0}}
	ctx := context.Background()

	_, hit, err := runner.ProcessWithCacheInfo(ctx, raw, quietOpts())
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if hit {
		t.Error("first call should miss the cache")
	}

	viz, hit, err := runner.ProcessWithCacheInfo(ctx, raw, quietOpts())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !hit {
		t.Error("second call should hit the cache")
	}
	if len(viz.Scenes) != 1 || viz.Scenes[0].ID != "cached" {
		t.Errorf("cached response mismatch: %+v", viz)
	}

	// Refresh bypasses the cache.
	opts := quietOpts()
	opts.Refresh = true
	if _, hit, _ := runner.ProcessWithCacheInfo(ctx, raw, opts); hit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestProcessContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := []map[string]any{{"scene_id": "s"}}
	if _, err := newTestRunner().Process(ctx, raw, quietOpts()); err == nil {
		t.Error("cancelled context should abort processing")
	}
}

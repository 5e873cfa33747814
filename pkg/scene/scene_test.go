package scene

import (
	"path/filepath"
	"strings"
	"testing"
)

func sampleVisualization() *Visualization {
	return &Visualization{
		Scenes: []Scene{
			{
				ID:       "intro",
				Title:    "Intro",
				Duration: 10,
				Shapes: []Shape{
					{Type: ShapeCircle, X: 900, Y: 480, Width: 120, Height: 120, Radius: 60, Fill: "#4a90d9"},
					{Type: ShapeText, X: 860, Y: 640, Width: 200, Height: 40, Text: "Hello", FontSize: 24},
				},
				Animations: []Animation{
					{ShapeIndex: 0, Type: AnimFadeIn, Duration: 1},
					{ShapeIndex: 1, Type: AnimFadeIn, Duration: 1, Delay: 0.5},
				},
				Audio: &Audio{Text: "Welcome.", Duration: 10, TTS: DefaultTTSConfig()},
			},
			{
				ID:       "detail",
				Duration: 15,
				Shapes: []Shape{
					{Type: ShapeRectangle, X: 100, Y: 100, Width: 300, Height: 200},
				},
			},
		},
		TotalDuration: 25,
	}
}

func TestVisualizationRoundtrip(t *testing.T) {
	v := sampleVisualization()

	data, err := MarshalVisualization(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := UnmarshalVisualization(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got.Scenes) != 2 || got.TotalDuration != 25 {
		t.Errorf("roundtrip lost data: %+v", got)
	}
	if got.Scenes[0].Shapes[0].Radius != 60 {
		t.Errorf("radius = %v, want 60", got.Scenes[0].Shapes[0].Radius)
	}
	if got.Scenes[0].Audio == nil || got.Scenes[0].Audio.TTS.Voice != "en-US-neutral" {
		t.Error("audio block lost in roundtrip")
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "UnknownShapeType",
			json: `{"scenes":[{"scene_id":"s","duration":10,"shapes":[{"type":"blob","x":0,"y":0,"width":10,"height":10}]}]}`,
			want: "unknown type",
		},
		{
			name: "MissingDimensions",
			json: `{"scenes":[{"scene_id":"s","duration":10,"shapes":[{"type":"circle","x":0,"y":0}]}]}`,
			want: "missing dimensions",
		},
		{
			name: "AnimationIndexOutOfRange",
			json: `{"scenes":[{"scene_id":"s","duration":10,"shapes":[{"type":"circle","x":0,"y":0,"width":10,"height":10}],"animations":[{"shape_index":3,"type":"fadeIn"}]}]}`,
			want: "out of range",
		},
		{
			name: "NotJSON",
			json: `{{{`,
			want: "unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalVisualization([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestVisualizationFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz.json")
	v := sampleVisualization()

	if err := WriteVisualizationFile(v, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadVisualizationFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Scenes) != len(v.Scenes) {
		t.Errorf("scenes = %d, want %d", len(got.Scenes), len(v.Scenes))
	}
}

func TestCommandsFlattening(t *testing.T) {
	cmds := sampleVisualization().Commands()

	// Scene 1: clear + 2 draws + 2 animates + narrate. Scene 2: clear + draw.
	if len(cmds) != 8 {
		t.Fatalf("commands = %d, want 8", len(cmds))
	}

	if cmds[0].Op != OpClear || cmds[0].Time != 0 || cmds[0].SceneID != "intro" {
		t.Errorf("first command = %+v, want clear at t=0", cmds[0])
	}
	if cmds[1].Op != OpDraw || cmds[1].Shape == nil {
		t.Errorf("draw command missing shape: %+v", cmds[1])
	}
	if cmds[4].Op != OpAnimate || cmds[4].Time != 0.5 {
		t.Errorf("delayed animate = %+v, want t=0.5", cmds[4])
	}
	if cmds[5].Op != OpNarrate || cmds[5].Audio == nil {
		t.Errorf("narrate command = %+v", cmds[5])
	}

	// Second scene starts after the first scene's duration.
	if cmds[6].Op != OpClear || cmds[6].Time != 10 || cmds[6].SceneID != "detail" {
		t.Errorf("second clear = %+v, want t=10", cmds[6])
	}
	if cmds[7].Op != OpDraw || cmds[7].Time != 10 {
		t.Errorf("second draw = %+v, want t=10", cmds[7])
	}
}

func TestCommandsEmptyVisualization(t *testing.T) {
	v := &Visualization{}
	if cmds := v.Commands(); len(cmds) != 0 {
		t.Errorf("empty visualization yields %d commands, want 0", len(cmds))
	}
}

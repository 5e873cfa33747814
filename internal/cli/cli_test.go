package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandWiring(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"process":    false,
		"preview":    false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestReadRawScenes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{name: "BareArray", data: `[{"scene_id":"a"},{"scene_id":"b"}]`, want: 2},
		{name: "WrappedObject", data: `{"scenes":[{"scene_id":"a"}]}`, want: 1},
		{name: "EmptyArray", data: `[]`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenes.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			scenes, err := readRawScenes(path)
			if err != nil {
				t.Fatalf("readRawScenes: %v", err)
			}
			if len(scenes) != tt.want {
				t.Errorf("scenes = %d, want %d", len(scenes), tt.want)
			}
		})
	}
}

func TestReadRawScenesErrors(t *testing.T) {
	if _, err := readRawScenes(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("not json"), 0644)
	if _, err := readRawScenes(path); err == nil {
		t.Error("malformed json should error")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cache dir = %q, want trailing %q", dir, appName)
	}
}

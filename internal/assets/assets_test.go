package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tower-tmf/pkg/formats"
)

const twoObjects = `o Left
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o Right
v 2 0 0
v 3 0 0
v 2 1 0
f 4 5 6
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.obj", true},
		{"a.OBJ", true},
		{"a.gltf", true},
		{"a.glb", true},
		{"a.fbx", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoaderCaches(t *testing.T) {
	path := writeFile(t, "scene.obj", twoObjects)
	l := NewLoader(formats.OBJOptions{})
	defer l.Close()

	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(first))
	}

	if _, err := l.Load(path); err != nil {
		t.Fatalf("second Load() error: %v", err)
	}

	hits, misses := l.cache.hits, l.cache.misses
	if hits != 1 || misses != 1 {
		t.Errorf("cache = %d hits, %d misses, want 1, 1", hits, misses)
	}

	l.Close()
	hits, misses = l.cache.hits, l.cache.misses
	if hits != 0 || misses != 0 {
		t.Errorf("cache after Close = %d, %d, want 0, 0", hits, misses)
	}
}

func TestLoaderSelect(t *testing.T) {
	path := writeFile(t, "scene.obj", twoObjects)
	l := NewLoader(formats.OBJOptions{})

	tests := []struct {
		sel      string
		wantName string
		wantErr  bool
	}{
		{"", "Left", false},
		{"Right", "Right", false},
		{"0", "Left", false},
		{"1", "Right", false},
		{"2", "", true},
		{"-1", "", true},
		{"Middle", "", true},
	}

	for _, tt := range tests {
		t.Run("sel="+tt.sel, func(t *testing.T) {
			m, err := l.Select(path, tt.sel)
			if tt.wantErr {
				if !errors.Is(err, ErrMeshNotFound) {
					t.Errorf("expected ErrMeshNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if m.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", m.Name, tt.wantName)
			}
		})
	}
}

func TestLoaderErrors(t *testing.T) {
	l := NewLoader(formats.OBJOptions{})

	if _, err := l.Load("model.fbx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := l.Load(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}

	// Failed loads are not cached, so a retry misses again.
	l.Load("model.fbx")
	if hits, misses := l.cache.hits, l.cache.misses; hits != 0 || misses != 3 {
		t.Errorf("cache = %d hits, %d misses, want 0, 3", hits, misses)
	}
}

// Package assets loads source meshes from interchange files and caches the
// parsed result per path.
package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Faultbox/tower-tmf/pkg/formats"
)

// ErrUnsupportedFormat is returned for input files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// ErrMeshNotFound is returned when a selector matches no mesh in a file.
var ErrMeshNotFound = errors.New("mesh not found")

// Loader reads source files, dispatching on the file extension.
type Loader struct {
	opts  formats.OBJOptions
	cache *cache
}

// NewLoader creates a loader. opts applies to OBJ inputs.
func NewLoader(opts formats.OBJOptions) *Loader {
	return &Loader{
		opts:  opts,
		cache: newCache(),
	}
}

// Supported reports whether path has an extension the loader can read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj", ".gltf", ".glb":
		return true
	}
	return false
}

// Load returns the meshes in the file at path.
func (l *Loader) Load(path string) ([]formats.NamedMesh, error) {
	// Check cache first
	if meshes, ok := l.cache.get(path); ok {
		return meshes, nil
	}

	var (
		meshes []formats.NamedMesh
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		meshes, err = formats.ParseOBJFile(path, l.opts)
	case ".gltf", ".glb":
		meshes, err = formats.ParseGLTFFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	l.cache.set(path, meshes)
	return meshes, nil
}

// Select loads path and picks one mesh. sel is either a mesh name or a
// zero-based index; an empty sel picks the first mesh.
func (l *Loader) Select(path, sel string) (formats.NamedMesh, error) {
	meshes, err := l.Load(path)
	if err != nil {
		return formats.NamedMesh{}, err
	}
	if len(meshes) == 0 {
		return formats.NamedMesh{}, fmt.Errorf("%w: %s has no meshes", ErrMeshNotFound, path)
	}
	if sel == "" {
		return meshes[0], nil
	}

	for _, m := range meshes {
		if m.Name == sel {
			return m, nil
		}
	}
	if i, err := strconv.Atoi(sel); err == nil {
		if i < 0 || i >= len(meshes) {
			return formats.NamedMesh{}, fmt.Errorf("%w: index %d of %d in %s", ErrMeshNotFound, i, len(meshes), path)
		}
		return meshes[i], nil
	}
	return formats.NamedMesh{}, fmt.Errorf("%w: %q in %s", ErrMeshNotFound, sel, path)
}

// Close drops all cached meshes.
func (l *Loader) Close() {
	l.cache.clear()
}

// cache is a simple in-memory cache of parsed source files.
type cache struct {
	data map[string][]formats.NamedMesh
	mu   sync.Mutex

	hits   int
	misses int
}

func newCache() *cache {
	return &cache{
		data: make(map[string][]formats.NamedMesh),
	}
}

// get retrieves an item from cache.
func (c *cache) get(key string) ([]formats.NamedMesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// set stores an item in cache.
func (c *cache) set(key string, data []formats.NamedMesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// clear clears the cache.
func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]formats.NamedMesh)
	c.hits = 0
	c.misses = 0
}

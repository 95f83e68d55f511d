// Package exporter is the caller-facing entry point: it runs the normalizer
// over a source mesh and writes the result as a .tmf file.
package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tower-tmf/internal/logger"
	"github.com/Faultbox/tower-tmf/pkg/formats"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
	"github.com/Faultbox/tower-tmf/pkg/meshprep"
)

// Request describes one export.
type Request struct {
	DestinationPath   string // Written as given; see EnsureExtension
	Name              string
	SplitAngleDegrees float32
	AxisUpConversion  bool
	MissingUV         meshprep.UVPolicy
}

// NewRequest returns a request with the default normalizer options.
func NewRequest(dest, name string) Request {
	opts := meshprep.DefaultOptions()
	return Request{
		DestinationPath:   dest,
		Name:              name,
		SplitAngleDegrees: opts.SplitAngleDegrees,
		AxisUpConversion:  opts.AxisUpConversion,
		MissingUV:         opts.MissingUV,
	}
}

// Options returns the normalizer options of the request.
func (r Request) Options() meshprep.Options {
	return meshprep.Options{
		SplitAngleDegrees: r.SplitAngleDegrees,
		AxisUpConversion:  r.AxisUpConversion,
		MissingUV:         r.MissingUV,
	}
}

// Result summarizes a finished export.
type Result struct {
	Path          string
	SourceVerts   int
	SourcePolys   int
	Vertices      int // Positions after hard-edge splitting
	Triangles     int
	Bytes         int
	UVsZeroFilled bool
}

// Export normalizes src and writes it to req.DestinationPath.
// Nothing is written when normalization fails.
func Export(req Request, src *mesh.SourceMesh) (*Result, error) {
	if req.DestinationPath == "" {
		return nil, fmt.Errorf("export %q: empty destination path", req.Name)
	}

	log := logger.Named("export").With(zap.String("mesh", req.Name))

	res := &Result{Path: req.DestinationPath}
	if src != nil {
		res.SourceVerts = len(src.Positions)
		res.SourcePolys = len(src.Polygons)
		res.UVsZeroFilled = !src.HasUVs() && src.CornerCount() > 0
	}

	log.Debug("normalizing",
		zap.Int("vertices", res.SourceVerts),
		zap.Int("polygons", res.SourcePolys),
		zap.Float32("split_angle", req.SplitAngleDegrees),
		zap.Bool("axis_conversion", req.AxisUpConversion),
	)

	flat, err := meshprep.Normalize(src, req.Name, req.Options())
	if err != nil {
		return nil, fmt.Errorf("normalizing %q: %w", req.Name, err)
	}

	if res.UVsZeroFilled {
		log.Warn("mesh has no uv layer, writing zero texture coordinates")
	}

	res.Vertices = len(flat.Positions)
	res.Triangles = flat.TriangleCount()
	log.Debug("normalized",
		zap.Int("vertices", res.Vertices),
		zap.Int("split_added", res.Vertices-res.SourceVerts),
		zap.Int("triangles", res.Triangles),
	)

	if err := formats.WriteTMFFile(req.DestinationPath, flat); err != nil {
		return nil, err
	}
	res.Bytes = formats.EncodedTMFSize(flat)

	log.Info("wrote mesh",
		zap.String("path", req.DestinationPath),
		zap.Int("bytes", res.Bytes),
	)
	return res, nil
}

// EnsureExtension appends ".tmf" unless path already ends with it
// (case-insensitively).
func EnsureExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), formats.TMFExtension) {
		return path
	}
	return path + formats.TMFExtension
}

// DefaultDestination derives the output path for an input file: the input's
// base name with a .tmf extension, placed in dir when dir is set and next to
// the input otherwise.
func DefaultDestination(input, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + formats.TMFExtension
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrMalformedMesh is returned when a mesh violates its structural invariants.
var ErrMalformedMesh = errors.New("malformed mesh")

// Validate checks the structural invariants of a source mesh. All problems
// found are reported together, wrapped with ErrMalformedMesh.
func (m *SourceMesh) Validate() error {
	var errs error

	numVerts := len(m.Positions)
	for i, p := range m.Polygons {
		if len(p.Vertices) < 3 {
			errs = multierr.Append(errs, fmt.Errorf("polygon %d has %d corners, need at least 3", i, len(p.Vertices)))
			continue
		}
		for j, v := range p.Vertices {
			if v < 0 || v >= numVerts {
				errs = multierr.Append(errs, fmt.Errorf("polygon %d corner %d references vertex %d of %d", i, j, v, numVerts))
			}
		}
	}

	if m.HasUVs() {
		if corners := m.CornerCount(); len(m.UVs) != corners {
			errs = multierr.Append(errs, fmt.Errorf("uv layer has %d entries for %d corners", len(m.UVs), corners))
		}
	}

	if m.HasNormals() && len(m.Normals) != numVerts {
		errs = multierr.Append(errs, fmt.Errorf("%d normals for %d vertices", len(m.Normals), numVerts))
	}

	for _, e := range m.SharpEdges {
		if e.A < 0 || e.B < 0 || e.A >= numVerts || e.B >= numVerts {
			errs = multierr.Append(errs, fmt.Errorf("sharp edge %d-%d out of range", e.A, e.B))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMesh, errs)
	}
	return nil
}

// CheckInvariants verifies that a flattened mesh is consistent: per-corner
// arrays agree in length with the index stream, the index stream holds whole
// triangles, and every index points into Positions.
func (m *FlattenedMesh) CheckInvariants() error {
	var errs error

	if len(m.Indices)%3 != 0 {
		errs = multierr.Append(errs, fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices)))
	}
	if len(m.Normals) != len(m.Indices) {
		errs = multierr.Append(errs, fmt.Errorf("%d normals for %d corners", len(m.Normals), len(m.Indices)))
	}
	if len(m.UVs) != len(m.Indices) {
		errs = multierr.Append(errs, fmt.Errorf("%d uvs for %d corners", len(m.UVs), len(m.Indices)))
	}

	bad := 0
	for _, idx := range m.Indices {
		if idx < 0 || int(idx) >= len(m.Positions) {
			bad++
		}
	}
	if bad > 0 {
		errs = multierr.Append(errs, fmt.Errorf("%d indices outside [0, %d)", bad, len(m.Positions)))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMesh, errs)
	}
	return nil
}

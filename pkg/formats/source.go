package formats

import "github.com/Faultbox/tower-tmf/pkg/mesh"

// NamedMesh is a source mesh read from an interchange file.
type NamedMesh struct {
	Name string
	Mesh *mesh.SourceMesh
	// YUp is true when the source format is already Y-up and needs no axis
	// conversion before export.
	YUp bool
}

package mesh

// RawVertexStride is the number of floats per interleaved vertex:
// position (3), normal (3), uv (2).
const RawVertexStride = 3 + 3 + 2

// RawVertices expands the mesh into the interleaved buffer the engine uploads:
// one vertex per triangle corner, with sequential indices.
func (m *FlattenedMesh) RawVertices() ([]float32, []uint32) {
	vertices := make([]float32, len(m.Indices)*RawVertexStride)
	indices := make([]uint32, len(m.Indices))

	for i, idx := range m.Indices {
		v := vertices[i*RawVertexStride : (i+1)*RawVertexStride]

		p := m.Positions[idx]
		v[0], v[1], v[2] = p.X, p.Y, p.Z

		if i < len(m.Normals) {
			n := m.Normals[i]
			v[3], v[4], v[5] = n.X, n.Y, n.Z
		}
		if i < len(m.UVs) {
			uv := m.UVs[i]
			v[6], v[7] = uv.X, uv.Y
		}

		indices[i] = uint32(i)
	}

	return vertices, indices
}

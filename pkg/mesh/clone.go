package mesh

import "github.com/jinzhu/copier"

// Clone returns a deep copy of the mesh. The export pipeline works on the
// clone so the caller's mesh is never mutated.
func (m *SourceMesh) Clone() *SourceMesh {
	dup := &SourceMesh{}
	if err := copier.CopyWithOption(dup, m, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for
		// identical types.
		panic(err)
	}
	return dup
}

// Package formats reads and writes the mesh file formats used by the exporter.
package formats

// Note: TMF (Tower Mesh Format) encoding and decoding is in tmf.go
// Note: OBJ and glTF are source formats only; see obj.go and gltf.go

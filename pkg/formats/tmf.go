// TMF (Tower Mesh Format) encoder and decoder.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"

	"github.com/Faultbox/tower-tmf/pkg/math"
	"github.com/Faultbox/tower-tmf/pkg/mesh"
)

// TMFExtension is the conventional file extension for TMF files.
const TMFExtension = ".tmf"

// TMF format errors.
var (
	ErrTruncatedTMFData = errors.New("truncated TMF data")
	ErrInvalidTMFCount  = errors.New("invalid TMF block count")
)

// Element sizes in bytes.
const (
	tmfCountSize    = 4
	tmfVec3Size     = 12
	tmfVec2Size     = 8
	tmfIndexSize    = 4
	tmfMinFileBytes = 5 * tmfCountSize
)

// EncodeTMF writes m to w in the TMF layout:
//
//	int32 nameLength, name bytes
//	int32 vertexCount, float32[3] per position
//	int32 normalCount, float32[3] per normal
//	int32 uvCount,     float32[2] per uv
//	int32 indexCount,  int32 per index
//
// All values are little-endian. Empty blocks still write their zero count.
func EncodeTMF(w io.Writer, m *mesh.FlattenedMesh) error {
	bw := bufio.NewWriter(w)

	name := []byte(m.Name)
	blocks := []struct {
		count int
		data  any
	}{
		{len(name), name},
		{len(m.Positions), m.Positions},
		{len(m.Normals), m.Normals},
		{len(m.UVs), m.UVs},
		{len(m.Indices), m.Indices},
	}

	for _, b := range blocks {
		if b.count > gomath.MaxInt32 {
			return fmt.Errorf("%w: %d", ErrInvalidTMFCount, b.count)
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(b.count)); err != nil {
			return err
		}
		if b.count == 0 {
			continue
		}
		if err := binary.Write(bw, binary.LittleEndian, b.data); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteTMFFile creates or truncates path and writes m to it. The file is
// closed before returning, and a failed close is reported.
func WriteTMFFile(path string, m *mesh.FlattenedMesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating TMF file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing TMF file: %w", cerr)
		}
	}()

	if err := EncodeTMF(f, m); err != nil {
		return fmt.Errorf("writing TMF file: %w", err)
	}
	return nil
}

// EncodedTMFSize returns the exact number of bytes EncodeTMF writes for m.
func EncodedTMFSize(m *mesh.FlattenedMesh) int {
	return tmfMinFileBytes +
		len(m.Name) +
		len(m.Positions)*tmfVec3Size +
		len(m.Normals)*tmfVec3Size +
		len(m.UVs)*tmfVec2Size +
		len(m.Indices)*tmfIndexSize
}

// ParseTMF parses TMF data from a byte slice.
func ParseTMF(data []byte) (*mesh.FlattenedMesh, error) {
	if len(data) < tmfMinFileBytes {
		return nil, ErrTruncatedTMFData
	}

	r := bytes.NewReader(data)
	m := &mesh.FlattenedMesh{}

	// Read name
	n, err := readTMFCount(r, 1)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	name := make([]byte, n)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, ErrTruncatedTMFData
	}
	m.Name = string(name)

	// Read positions
	if n, err = readTMFCount(r, tmfVec3Size); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	m.Positions = make([]math.Vec3, n)
	if err := binary.Read(r, binary.LittleEndian, m.Positions); err != nil {
		return nil, ErrTruncatedTMFData
	}

	// Read normals
	if n, err = readTMFCount(r, tmfVec3Size); err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	m.Normals = make([]math.Vec3, n)
	if err := binary.Read(r, binary.LittleEndian, m.Normals); err != nil {
		return nil, ErrTruncatedTMFData
	}

	// Read uvs
	if n, err = readTMFCount(r, tmfVec2Size); err != nil {
		return nil, fmt.Errorf("uvs: %w", err)
	}
	m.UVs = make([]math.Vec2, n)
	if err := binary.Read(r, binary.LittleEndian, m.UVs); err != nil {
		return nil, ErrTruncatedTMFData
	}

	// Read indices
	if n, err = readTMFCount(r, tmfIndexSize); err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	m.Indices = make([]int32, n)
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, ErrTruncatedTMFData
	}

	return m, nil
}

// ParseTMFFile parses a TMF file from disk.
func ParseTMFFile(path string) (*mesh.FlattenedMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TMF file: %w", err)
	}
	return ParseTMF(data)
}

// readTMFCount reads a block count and checks that the block fits in what
// remains of the reader.
func readTMFCount(r *bytes.Reader, elemSize int) (int, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, ErrTruncatedTMFData
	}
	if count < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTMFCount, count)
	}
	if int64(count)*int64(elemSize) > int64(r.Len()) {
		return 0, ErrTruncatedTMFData
	}
	return int(count), nil
}

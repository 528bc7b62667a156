package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// StlMesh is a fully materialized binary STL, as read back from disk.
type StlMesh struct {
	Header        string
	DeclaredCount uint32
	Normals       [][3]float32
	Triangles     []Triangle
}

// ReadStl parses a binary STL stream. The declared facet count must match
// the body length; a short body means a truncated or corrupt file.
func ReadStl(r io.Reader) (*StlMesh, error) {
	var header struct {
		H     [binaryHeader]byte
		NFace uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}

	m := &StlMesh{
		Header:        strings.TrimRight(string(header.H[:]), "\x00 "),
		DeclaredCount: header.NFace,
	}
	if strings.HasPrefix(m.Header, "solid ") {
		return nil, fmt.Errorf("ASCII STL input is not supported, convert it to binary first")
	}

	record := make([]byte, facetRecordSize)
	for i := uint32(0); i < header.NFace; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, fmt.Errorf("reading facet %d of %d: %w", i+1, header.NFace, err)
		}

		var normal [3]float32
		for c := range normal {
			normal[c] = math.Float32frombits(binary.LittleEndian.Uint32(record[4*c:]))
		}

		var tri Triangle
		for v := 0; v < 3; v++ {
			base := 12 + 12*v
			tri.V[v] = Vertex{
				X: math.Float32frombits(binary.LittleEndian.Uint32(record[base:])),
				Y: math.Float32frombits(binary.LittleEndian.Uint32(record[base+4:])),
				Z: math.Float32frombits(binary.LittleEndian.Uint32(record[base+8:])),
			}
		}

		m.Normals = append(m.Normals, normal)
		m.Triangles = append(m.Triangles, tri)
	}

	return m, nil
}

// ReadStlFile parses a binary STL from disk.
func ReadStlFile(path string) (*StlMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadStl(file)
}

package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
)

const (
	binaryHeader    = 80
	facetRecordSize = 12*4 + 2
)

// WriteError reports an I/O failure while producing the output mesh.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing mesh [%s]: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// StlWriter streams facets to an STL file, in the binary layout by default
// or the textual solid/facet layout when ascii is requested.
//
// Facets are written to a temporary sibling path and renamed onto the
// destination only when Close succeeds, so a failed run never leaves a file
// that looks valid. The binary facet count is predicted up front and patched
// with the real count on Close, the same trick phstl uses, because nodata
// cells make the final count unknowable before the walk.
type StlWriter struct {
	path    string
	tmpPath string
	ascii   bool
	solid   string

	file    *os.File
	buf     *bufio.Writer
	written uint32
	record  [facetRecordSize]byte
}

func NewStlWriter(path string, ascii bool, predictedFacets uint32) (*StlWriter, error) {
	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.New().String())

	file, err := os.Create(tmpPath)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	s := &StlWriter{
		path:    path,
		tmpPath: tmpPath,
		ascii:   ascii,
		solid:   "topo",
		file:    file,
		buf:     bufio.NewWriterSize(file, 1<<20),
	}

	if err := s.writeHeader(predictedFacets); err != nil {
		s.Abort()
		return nil, err
	}
	return s, nil
}

// Written returns the number of facets written so far.
func (s *StlWriter) Written() uint32 {
	return s.written
}

func (s *StlWriter) WriteTriangle(t Triangle) error {
	var err error
	if s.ascii {
		err = s.writeAsciiFacet(t)
	} else {
		err = s.writeBinaryFacet(t)
	}
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	s.written++
	return nil
}

// Close finalizes the mesh: it patches the binary facet count, syncs, and
// renames the temporary file onto the destination path.
func (s *StlWriter) Close() error {
	if s.ascii {
		if _, err := fmt.Fprintf(s.buf, "endsolid %s\n", s.solid); err != nil {
			return s.fail(err)
		}
	}
	if err := s.buf.Flush(); err != nil {
		return s.fail(err)
	}

	if !s.ascii {
		// facet count sits right after the 80 byte header
		var count [4]byte
		binary.LittleEndian.PutUint32(count[:], s.written)
		if _, err := s.file.WriteAt(count[:], binaryHeader); err != nil {
			return s.fail(err)
		}
	}

	if err := s.file.Close(); err != nil {
		s.file = nil
		return s.fail(err)
	}
	s.file = nil

	if err := os.Rename(s.tmpPath, s.path); err != nil {
		_ = os.Remove(s.tmpPath)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// Abort discards the temporary file. Safe to call after a failed Close.
func (s *StlWriter) Abort() {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	_ = os.Remove(s.tmpPath)
}

func (s *StlWriter) fail(err error) error {
	s.Abort()
	return &WriteError{Path: s.path, Err: err}
}

func (s *StlWriter) writeHeader(predictedFacets uint32) error {
	if s.ascii {
		if _, err := fmt.Fprintf(s.buf, "solid %s\n", s.solid); err != nil {
			return &WriteError{Path: s.path, Err: err}
		}
		return nil
	}

	var header [binaryHeader + 4]byte
	copy(header[:], "topo-tool terrain mesh")
	binary.LittleEndian.PutUint32(header[binaryHeader:], predictedFacets)
	if _, err := s.buf.Write(header[:]); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

func (s *StlWriter) writeBinaryFacet(t Triangle) error {
	normal := t.Normal()
	record := s.record[:]

	off := 0
	for _, f := range normal {
		binary.LittleEndian.PutUint32(record[off:], math.Float32bits(f))
		off += 4
	}
	for _, v := range t.V {
		binary.LittleEndian.PutUint32(record[off:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(record[off+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(record[off+8:], math.Float32bits(v.Z))
		off += 12
	}
	// 2 byte attribute field, always zero
	record[off] = 0
	record[off+1] = 0

	_, err := s.buf.Write(record)
	return err
}

func (s *StlWriter) writeAsciiFacet(t Triangle) error {
	normal := t.Normal()
	if _, err := fmt.Fprintf(s.buf, "facet normal %e %e %e\n  outer loop\n", normal[0], normal[1], normal[2]); err != nil {
		return err
	}
	for _, v := range t.V {
		if _, err := fmt.Fprintf(s.buf, "    vertex %e %e %e\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.buf, "  endloop\nendfacet\n")
	return err
}

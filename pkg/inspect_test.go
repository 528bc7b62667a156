package pkg

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/pipeline"
)

func writeMesh(t *testing.T, path string, facets ...mesh.Triangle) {
	t.Helper()

	writer, err := mesh.NewStlWriter(path, false, uint32(len(facets)))
	if err != nil {
		t.Fatal(err)
	}
	for _, facet := range facets {
		if err := writer.WriteTriangle(facet); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRunInspector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.stl")
	writeMesh(t, path, mesh.Triangle{V: [3]mesh.Vertex{
		{X: 0, Y: 0, Z: 1},
		{X: 2, Y: 0, Z: 1},
		{X: 0, Y: 2, Z: 1},
	}})

	if err := NewInspector().RunInspector(&pipeline.InspectOptions{Input: path}); err != nil {
		t.Fatal(err)
	}
}

func TestRunInspectorEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.stl")
	writeMesh(t, path)

	err := NewInspector().RunInspector(&pipeline.InspectOptions{Input: path})
	var emptyErr *pipeline.EmptyMeshError
	if !errors.As(err, &emptyErr) {
		t.Errorf("got %v, want EmptyMeshError", err)
	}
}

func TestRunInspectorMissingFile(t *testing.T) {
	err := NewInspector().RunInspector(&pipeline.InspectOptions{Input: "/no/such/mesh.stl"})
	if err == nil {
		t.Error("expected an error for a missing input")
	}
}

func TestFacetArea(t *testing.T) {
	// right triangle with legs of 2, area 2
	tri := mesh.Triangle{V: [3]mesh.Vertex{
		{X: 0, Y: 0, Z: 5},
		{X: 2, Y: 0, Z: 5},
		{X: 0, Y: 2, Z: 5},
	}}
	if got := facetArea(tri); got != 2 {
		t.Errorf("facetArea = %f, want 2", got)
	}

	degenerate := mesh.Triangle{V: [3]mesh.Vertex{
		{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}}
	if got := facetArea(degenerate); got != 0 {
		t.Errorf("degenerate facetArea = %f, want 0", got)
	}
}

package mesher

import (
	"testing"

	"github.com/oliver-rew/topo-tool/internal/converters/elevation/offset_elevation_corrector"
	"github.com/oliver-rew/topo-tool/internal/geometry"
	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/raster"
)

const testNoData = -9999

// northUpGrid builds a grid with 10 unit pixels, row 0 on the northern edge.
func northUpGrid(rows, cols int, values []float32) *raster.Grid {
	return &raster.Grid{
		Rows: rows, Cols: cols,
		Data: values,
		Transform: geometry.Affine{
			OriginX: 0, PixelX: 10,
			OriginY: 1000, PixelY: -10,
		},
		NoData:    testNoData,
		HasNoData: true,
	}
}

func flatGrid(rows, cols int, z float32) *raster.Grid {
	values := make([]float32, rows*cols)
	for i := range values {
		values[i] = z
	}
	return northUpGrid(rows, cols, values)
}

func collect(t *Triangulator) []mesh.Triangle {
	return t.TriangulateRows(0, t.CellRows())
}

func TestTriangulatorFacetCount(t *testing.T) {
	tests := []struct {
		rows, cols int
		want       int
	}{
		{2, 2, 2},
		{3, 3, 8},
		{4, 7, 36},
		{1, 10, 0},
		{10, 1, 0},
		{1, 1, 0},
	}

	for _, test := range tests {
		tr := NewTriangulator(flatGrid(test.rows, test.cols, 1), 1, nil)
		if int(tr.MaxFacets()) != test.want {
			t.Errorf("%dx%d: MaxFacets() = %d, want %d", test.rows, test.cols, tr.MaxFacets(), test.want)
		}
		if got := len(collect(tr)); got != test.want {
			t.Errorf("%dx%d: triangulated %d facets, want %d", test.rows, test.cols, got, test.want)
		}
	}
}

func TestTriangulatorAppliesScaleAndOffset(t *testing.T) {
	corrector := offset_elevation_corrector.NewOffsetElevationCorrector(5)
	tr := NewTriangulator(flatGrid(3, 3, 1), 2, corrector)

	facets := collect(tr)
	if len(facets) != 8 {
		t.Fatalf("got %d facets, want 8", len(facets))
	}
	for _, facet := range facets {
		for _, v := range facet.V {
			// (1 + 5) * 2
			if v.Z != 12 {
				t.Fatalf("vertex z = %f, want 12", v.Z)
			}
		}
	}
}

func TestTriangulatorSkipsNoDataCells(t *testing.T) {
	// one sentinel in the middle of a 3x3 grid touches all four cells
	values := []float32{
		1, 1, 1,
		1, testNoData, 1,
		1, 1, 1,
	}
	tr := NewTriangulator(northUpGrid(3, 3, values), 1, nil)
	if facets := collect(tr); len(facets) != 0 {
		t.Errorf("center sentinel should void every cell, got %d facets", len(facets))
	}

	// a corner sentinel only touches one cell
	values = []float32{
		testNoData, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}
	tr = NewTriangulator(northUpGrid(3, 3, values), 1, nil)
	if facets := collect(tr); len(facets) != 6 {
		t.Errorf("corner sentinel should void one cell, got %d facets, want 6", len(facets))
	}
}

func TestTriangulatorWindingFacesUp(t *testing.T) {
	tr := NewTriangulator(flatGrid(3, 3, 7), 1, nil)
	for _, facet := range collect(tr) {
		normal := facet.Normal()
		if normal[2] <= 0 {
			t.Fatalf("flat terrain facet normal %v does not point up", normal)
		}
	}
}

func TestTriangulateRowsMatchesFullWalk(t *testing.T) {
	values := []float32{
		1, 2, 3, 4,
		5, testNoData, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
		17, 18, 19, 20,
	}
	tr := NewTriangulator(northUpGrid(5, 4, values), 2, nil)

	var banded []mesh.Triangle
	for begin := 0; begin < tr.CellRows(); begin += 2 {
		end := begin + 2
		if end > tr.CellRows() {
			end = tr.CellRows()
		}
		banded = append(banded, tr.TriangulateRows(begin, end)...)
	}

	next := tr.Facets()
	var sequential []mesh.Triangle
	for {
		facet, ok := next()
		if !ok {
			break
		}
		sequential = append(sequential, facet)
	}

	if len(banded) != len(sequential) {
		t.Fatalf("banded walk gave %d facets, sequential walk %d", len(banded), len(sequential))
	}
	for i := range banded {
		if banded[i] != sequential[i] {
			t.Fatalf("facet %d differs between banded and sequential walks", i)
		}
	}
}

func TestTriangulatorVertexPlacement(t *testing.T) {
	tr := NewTriangulator(flatGrid(2, 2, 3), 1, nil)
	facets := collect(tr)
	if len(facets) != 2 {
		t.Fatalf("got %d facets, want 2", len(facets))
	}

	// first facet is (NW, SW, SE) of the only cell
	want := [3]mesh.Vertex{
		{X: 0, Y: 1000, Z: 3},
		{X: 0, Y: 990, Z: 3},
		{X: 10, Y: 990, Z: 3},
	}
	if facets[0].V != want {
		t.Errorf("first facet vertices = %v, want %v", facets[0].V, want)
	}
}

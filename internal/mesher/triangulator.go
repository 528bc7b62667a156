package mesher

import (
	"github.com/oliver-rew/topo-tool/internal/converters"
	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/raster"
	"github.com/oliver-rew/topo-tool/tools"
)

// Triangulator walks a grid and emits two facets per 2x2 cell neighborhood.
//
// A cell with the corner samples
//
//	NW--NE
//	|  / |
//	| /  |
//	SW--SE
//
// splits along the NW-SE diagonal into (NW, SW, SE) and (NW, SE, NE). With
// rows growing southward both facets wind counter-clockwise seen from above.
// A cell with any nodata corner is skipped entirely, so no geometry is ever
// fabricated over missing data.
type Triangulator struct {
	grid      *raster.Grid
	zScale    float64
	corrector converters.ElevationCorrector
}

func NewTriangulator(grid *raster.Grid, zScale float64, corrector converters.ElevationCorrector) *Triangulator {
	return &Triangulator{
		grid:      grid,
		zScale:    zScale,
		corrector: corrector,
	}
}

// CellRows returns the number of quad cell rows, one less than sample rows.
func (t *Triangulator) CellRows() int {
	if t.grid.Rows < 2 {
		return 0
	}
	return t.grid.Rows - 1
}

// CellCols returns the number of quad cell columns.
func (t *Triangulator) CellCols() int {
	if t.grid.Cols < 2 {
		return 0
	}
	return t.grid.Cols - 1
}

// MaxFacets is the facet count of a fully valid grid, used to predict the
// binary STL header count before nodata cells are known.
func (t *Triangulator) MaxFacets() uint32 {
	return uint32(2 * t.CellRows() * t.CellCols())
}

// TriangulateRows triangulates the cell rows [begin, end) and returns their
// facets in row-major cell order.
func (t *Triangulator) TriangulateRows(begin, end int) []mesh.Triangle {
	if begin < 0 {
		begin = 0
	}
	if end > t.CellRows() {
		end = t.CellRows()
	}

	var facets []mesh.Triangle
	for row := begin; row < end; row++ {
		for col := 0; col < t.CellCols(); col++ {
			facets = t.cellTriangles(row, col, facets)
		}
	}
	return facets
}

// Facets returns a single-pass iterator over all facets in row-major cell
// order. It returns false once the grid is exhausted.
func (t *Triangulator) Facets() func() (mesh.Triangle, bool) {
	row, col := 0, 0
	var pending []mesh.Triangle

	return func() (mesh.Triangle, bool) {
		for {
			if len(pending) > 0 {
				next := pending[0]
				pending = pending[1:]
				return next, true
			}
			if row >= t.CellRows() {
				return mesh.Triangle{}, false
			}
			pending = t.cellTriangles(row, col, pending[:0])
			col++
			if col >= t.CellCols() {
				col = 0
				row++
			}
		}
	}
}

func (t *Triangulator) cellTriangles(row, col int, out []mesh.Triangle) []mesh.Triangle {
	g := t.grid

	if g.IsNoData(row, col) || g.IsNoData(row, col+1) ||
		g.IsNoData(row+1, col) || g.IsNoData(row+1, col+1) {
		return out
	}

	nw := t.vertex(row, col)
	ne := t.vertex(row, col+1)
	sw := t.vertex(row+1, col)
	se := t.vertex(row+1, col+1)

	out = append(out,
		mesh.Triangle{V: [3]mesh.Vertex{nw, sw, se}},
		mesh.Triangle{V: [3]mesh.Vertex{nw, se, ne}},
	)
	return out
}

func (t *Triangulator) vertex(row, col int) mesh.Vertex {
	x, y := t.grid.World(float64(col), float64(row))

	z := t.grid.Value(row, col)
	if t.corrector != nil {
		z = t.corrector.CorrectElevation(z)
	}
	z *= t.zScale

	return mesh.Vertex{
		X: tools.TruncateToFloat32(x),
		Y: tools.TruncateToFloat32(y),
		Z: tools.TruncateToFloat32(z),
	}
}

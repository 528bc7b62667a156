package raster

import "github.com/oliver-rew/topo-tool/internal/geometry"

// Grid is the elevation array handed to the triangulator: the possibly
// cropped, resampled and reprojected samples of band 1, with the affine
// transform describing where each sample sits in the working CRS.
// Samples are stored row major, row 0 first.
type Grid struct {
	Rows      int
	Cols      int
	Data      []float32
	Transform geometry.Affine

	// NoData is only meaningful when HasNoData is set. Datasets without a
	// declared sentinel treat every sample as valid.
	NoData    float64
	HasNoData bool
}

// Value returns the sample at (row, col). Callers are expected to stay in
// bounds, the same as indexing a slice.
func (g *Grid) Value(row, col int) float64 {
	return float64(g.Data[row*g.Cols+col])
}

// IsNoData reports whether the sample at (row, col) is the nodata sentinel.
func (g *Grid) IsNoData(row, col int) bool {
	return g.HasNoData && float64(g.Data[row*g.Cols+col]) == g.NoData
}

// World maps a fractional pixel position to working CRS coordinates.
func (g *Grid) World(col, row float64) (x, y float64) {
	return g.Transform.Apply(col, row)
}

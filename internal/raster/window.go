package raster

import (
	"fmt"
	"math"

	"github.com/oliver-rew/topo-tool/internal/geometry"
)

// PixelWindow is an integer sub-rectangle of a raster, derived by inverting
// the affine transform against a crop bounding box.
type PixelWindow struct {
	ColOff int
	RowOff int
	Cols   int
	Rows   int
}

// OutOfBoundsError reports a crop box that does not intersect the raster.
type OutOfBoundsError struct {
	Box    geometry.BoundingBox
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("crop box x[%f,%f] y[%f,%f] does not intersect raster extent (%dx%d)",
		e.Box.Xmin, e.Box.Xmax, e.Box.Ymin, e.Box.Ymax, e.Width, e.Height)
}

// ResolveWindow translates a crop box already expressed in the raster's
// native CRS into a pixel window. The float window is expanded outward with
// floor/ceil so the requested box is fully contained, then clamped to the
// raster extent. A clamped window with zero area yields OutOfBoundsError.
func ResolveWindow(transform geometry.Affine, width, height int, box *geometry.BoundingBox) (PixelWindow, error) {
	var window PixelWindow

	// The four box corners cover rasters with negative or rotated pixel
	// axes, where a single min/max corner pair would flip under inversion.
	colMin, rowMin := math.Inf(1), math.Inf(1)
	colMax, rowMax := math.Inf(-1), math.Inf(-1)
	for _, corner := range box.Corners() {
		col, row, err := transform.Invert(corner.X, corner.Y)
		if err != nil {
			return window, err
		}
		colMin = math.Min(colMin, col)
		colMax = math.Max(colMax, col)
		rowMin = math.Min(rowMin, row)
		rowMax = math.Max(rowMax, row)
	}

	c0 := int(math.Floor(colMin))
	r0 := int(math.Floor(rowMin))
	c1 := int(math.Ceil(colMax))
	r1 := int(math.Ceil(rowMax))

	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 > width {
		c1 = width
	}
	if r1 > height {
		r1 = height
	}

	if c1-c0 < 1 || r1-r0 < 1 {
		return window, &OutOfBoundsError{Box: *box, Width: width, Height: height}
	}

	window = PixelWindow{
		ColOff: c0,
		RowOff: r0,
		Cols:   c1 - c0,
		Rows:   r1 - r0,
	}
	return window, nil
}

package geometry

import (
	"errors"
	"math"
)

// Affine maps grid (col,row) indices to world coordinates:
//
//	x = OriginX + col*PixelX + row*RotX
//	y = OriginY + col*RotY + row*PixelY
//
// The coefficient order matches the GDAL geotransform array. PixelY is
// negative for the usual north-up raster where row 0 is the northern edge.
type Affine struct {
	OriginX float64
	PixelX  float64
	RotX    float64
	OriginY float64
	RotY    float64
	PixelY  float64
}

func AffineFromGeoTransform(gt [6]float64) Affine {
	return Affine{
		OriginX: gt[0],
		PixelX:  gt[1],
		RotX:    gt[2],
		OriginY: gt[3],
		RotY:    gt[4],
		PixelY:  gt[5],
	}
}

func (a Affine) GeoTransform() [6]float64 {
	return [6]float64{a.OriginX, a.PixelX, a.RotX, a.OriginY, a.RotY, a.PixelY}
}

// Apply maps fractional pixel coordinates to world coordinates.
func (a Affine) Apply(col, row float64) (x, y float64) {
	x = a.OriginX + col*a.PixelX + row*a.RotX
	y = a.OriginY + col*a.RotY + row*a.PixelY
	return x, y
}

// Invert maps world coordinates back to fractional pixel coordinates.
func (a Affine) Invert(x, y float64) (col, row float64, err error) {
	det := a.PixelX*a.PixelY - a.RotX*a.RotY
	if math.Abs(det) < 1e-12 {
		return 0, 0, errors.New("affine transform is not invertible")
	}
	dx := x - a.OriginX
	dy := y - a.OriginY
	col = (dx*a.PixelY - dy*a.RotX) / det
	row = (dy*a.PixelX - dx*a.RotY) / det
	return col, row, nil
}

// Scaled returns the transform of the same raster after decimating both
// axes, i.e. with pixel size grown by (old dimension / new dimension).
func (a Affine) Scaled(colFactor, rowFactor float64) Affine {
	return Affine{
		OriginX: a.OriginX,
		PixelX:  a.PixelX * colFactor,
		RotX:    a.RotX * rowFactor,
		OriginY: a.OriginY,
		RotY:    a.RotY * colFactor,
		PixelY:  a.PixelY * rowFactor,
	}
}

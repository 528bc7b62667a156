package raster

import (
	"fmt"
	"math"

	"github.com/oliver-rew/topo-tool/internal/geometry"
)

// InvalidParameterError reports a transform parameter outside its legal range.
type InvalidParameterError struct {
	Name  string
	Value interface{}
	Want  string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s [%v]: want %s", e.Name, e.Value, e.Want)
}

// Info describes an open dataset before any transform is applied.
type Info struct {
	Width     int
	Height    int
	Transform geometry.Affine
	NoData    float64
	HasNoData bool

	// Proj is a human readable description of the CRS, used for logging only.
	Proj string
}

// LooksGeographic guesses whether the transform is expressed in degrees.
// Sub-degree pixels with an origin inside the lat/lon value range are a
// strong hint. Only a heuristic for warning users when the raster carries no
// usable CRS metadata; a declared srid gives the definitive answer.
func (i *Info) LooksGeographic() bool {
	return math.Abs(i.Transform.PixelX) < 0.1 &&
		math.Abs(i.Transform.PixelY) < 0.1 &&
		math.Abs(i.Transform.OriginX) <= 360 &&
		math.Abs(i.Transform.OriginY) <= 90
}

// Dataset abstracts the raster backend behind the conversion pipeline. The
// crop/resample/reproject kernels are provided by the backend (GDAL in the
// standard implementation); this interface only fixes their order and the
// metadata contract of the resulting grid.
//
// Crop, Resample and Reproject replace the dataset in place, so Info must be
// re-read after each step. Grid reads band 1 of the current state.
type Dataset interface {
	Info() (*Info, error)

	// NativeBoundingBox transforms a WGS84 lat/lon crop box into the
	// dataset's own CRS.
	NativeBoundingBox(box *geometry.BoundingBox) (*geometry.BoundingBox, error)

	Crop(window PixelWindow) error
	Resample(factor float64) error
	Reproject(crs string) error

	Grid() (*Grid, error)
	Close() error
}

// ValidateResampleFactor enforces the (0, 1] decimation contract shared by
// every Dataset implementation.
func ValidateResampleFactor(factor float64) error {
	if factor <= 0 || factor > 1 {
		return &InvalidParameterError{
			Name:  "resample factor",
			Value: factor,
			Want:  "a value in (0, 1]",
		}
	}
	return nil
}

package converters

import (
	"github.com/oliver-rew/topo-tool/internal/geometry"
)

// CoordinateConverter converts point coordinates between EPSG coordinate
// reference systems. The pipeline consults it when the user declares the
// raster srid explicitly; otherwise the raster backend transforms with the
// CRS embedded in the dataset.
type CoordinateConverter interface {
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error)
	Convert2DBoundingboxToSrid(box *geometry.BoundingBox, sourceSrid int, targetSrid int) (*geometry.BoundingBox, error)

	// IsGeographicSrid reports whether the srid denotes an unprojected
	// (degree unit) system. Meshing degree XY against metre Z produces
	// useless geometry, so the pipeline refuses such systems unless forced.
	IsGeographicSrid(srid int) (bool, error)

	Cleanup()
}

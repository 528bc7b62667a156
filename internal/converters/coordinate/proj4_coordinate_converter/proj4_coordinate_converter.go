package proj4_coordinate_converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	proj "github.com/xeonx/proj4"

	"github.com/oliver-rew/topo-tool/internal/converters"
	"github.com/oliver-rew/topo-tool/internal/geometry"
)

const toRadians = math.Pi / 180
const toDegrees = 180 / math.Pi

type proj4CoordinateConverter struct {
	// proj contexts are expensive to initialize, cache them per srid
	projections map[int]*proj.Proj
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj.Proj),
	}
}

func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	src, err := cc.initProjection(sourceSrid)
	if err != nil {
		return coord, err
	}
	dst, err := cc.initProjection(targetSrid)
	if err != nil {
		return coord, err
	}

	return executeConversion(&coord, src, dst)
}

func (cc *proj4CoordinateConverter) Convert2DBoundingboxToSrid(box *geometry.BoundingBox, sourceSrid int, targetSrid int) (*geometry.BoundingBox, error) {
	if box == nil {
		return nil, errors.New("nil bounding box cannot be converted")
	}

	corners := box.Corners()
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, corner := range corners {
		converted, err := cc.ConvertCoordinateSrid(sourceSrid, targetSrid, corner)
		if err != nil {
			return nil, err
		}
		xMin = math.Min(xMin, converted.X)
		xMax = math.Max(xMax, converted.X)
		yMin = math.Min(yMin, converted.Y)
		yMax = math.Max(yMax, converted.Y)
	}

	return geometry.NewBoundingBox(xMin, yMin, xMax, yMax), nil
}

func (cc *proj4CoordinateConverter) IsGeographicSrid(srid int) (bool, error) {
	projection, err := cc.initProjection(srid)
	if err != nil {
		return false, err
	}
	return projection.IsLatLong(), nil
}

// Cleanup releases all cached proj contexts.
func (cc *proj4CoordinateConverter) Cleanup() {
	for _, projection := range cc.projections {
		projection.Close()
	}
	cc.projections = make(map[int]*proj.Proj)
}

func (cc *proj4CoordinateConverter) initProjection(srid int) (*proj.Proj, error) {
	if projection, ok := cc.projections[srid]; ok {
		return projection, nil
	}

	projection, err := proj.InitPlus("+init=epsg:" + strconv.Itoa(srid))
	if err != nil {
		return nil, fmt.Errorf("initializing projection for EPSG:%d: %w", srid, err)
	}
	cc.projections[srid] = projection

	return projection, nil
}

func executeConversion(coord *geometry.Coordinate, sourceProj *proj.Proj, destinationProj *proj.Proj) (geometry.Coordinate, error) {
	x := []float64{coord.X}
	y := []float64{coord.Y}
	z := []float64{coord.Z}

	// proj4 talks radians for geographic systems
	if sourceProj.IsLatLong() {
		x[0] *= toRadians
		y[0] *= toRadians
	}

	if err := proj.TransformRaw(sourceProj, destinationProj, x, y, z); err != nil {
		return *coord, fmt.Errorf("converting coordinate (%f, %f): %w", coord.X, coord.Y, err)
	}

	if destinationProj.IsLatLong() {
		x[0] *= toDegrees
		y[0] *= toDegrees
	}

	return geometry.Coordinate{X: x[0], Y: y[0], Z: z[0]}, nil
}

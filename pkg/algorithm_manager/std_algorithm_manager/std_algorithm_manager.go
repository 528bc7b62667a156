package std_algorithm_manager

import (
	"github.com/oliver-rew/topo-tool/internal/converters"
	"github.com/oliver-rew/topo-tool/internal/converters/coordinate/proj4_coordinate_converter"
	"github.com/oliver-rew/topo-tool/internal/converters/elevation/offset_elevation_corrector"
	"github.com/oliver-rew/topo-tool/internal/pipeline"
	"github.com/oliver-rew/topo-tool/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
}

func NewAlgorithmManager(opts *pipeline.ConvertOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		coordinateConverter: proj4_coordinate_converter.NewProj4CoordinateConverter(),
		elevationCorrector:  offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
	}
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

func (m *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return m.elevationCorrector
}

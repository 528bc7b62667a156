package algorithm_manager

import (
	"github.com/oliver-rew/topo-tool/internal/converters"
)

type AlgorithmManager interface {
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
}

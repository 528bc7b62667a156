package pipeline

import (
	"errors"
	"fmt"

	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/raster"
)

// EmptyMeshError reports a grid that produced no facets at all, typically
// because every cell touched the nodata sentinel. The pipeline refuses to
// write a degenerate mesh file in that case.
type EmptyMeshError struct {
	Input string
}

func (e *EmptyMeshError) Error() string {
	return fmt.Sprintf("no facets produced from [%s]: grid is empty or fully nodata", e.Input)
}

// Exit codes, distinguishable for scripting.
const (
	ExitOK               = 0
	ExitInvalidParameter = 1
	ExitOutOfBounds      = 2
	ExitEmptyMesh        = 3
	ExitWriteFailure     = 4
	ExitFailure          = 5
)

// ExitCode maps an error from the pipeline onto the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var invalidErr *raster.InvalidParameterError
	var boundsErr *raster.OutOfBoundsError
	var emptyErr *EmptyMeshError
	var writeErr *mesh.WriteError

	switch {
	case errors.As(err, &invalidErr):
		return ExitInvalidParameter
	case errors.As(err, &boundsErr):
		return ExitOutOfBounds
	case errors.As(err, &emptyErr):
		return ExitEmptyMesh
	case errors.As(err, &writeErr):
		return ExitWriteFailure
	}
	return ExitFailure
}

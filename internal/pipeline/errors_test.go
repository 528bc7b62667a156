package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/raster"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{&raster.InvalidParameterError{Name: "zscale"}, ExitInvalidParameter},
		{&raster.OutOfBoundsError{}, ExitOutOfBounds},
		{&EmptyMeshError{Input: "in.tif"}, ExitEmptyMesh},
		{&mesh.WriteError{Path: "out.stl", Err: errors.New("disk full")}, ExitWriteFailure},
		{errors.New("anything else"), ExitFailure},
	}

	for _, test := range tests {
		if got := ExitCode(test.err); got != test.want {
			t.Errorf("ExitCode(%v) = %d, want %d", test.err, got, test.want)
		}
	}
}

func TestExitCodeUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("processing failed: %w", &raster.OutOfBoundsError{Width: 10, Height: 10})
	if got := ExitCode(err); got != ExitOutOfBounds {
		t.Errorf("ExitCode of a wrapped bounds error = %d, want %d", got, ExitOutOfBounds)
	}
}

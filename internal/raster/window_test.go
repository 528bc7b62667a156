package raster

import (
	"errors"
	"testing"

	"github.com/oliver-rew/topo-tool/internal/geometry"
)

// 100x80 north-up raster: 10 unit pixels, origin at (1000, 2000), rows
// growing southward.
var testTransform = geometry.Affine{
	OriginX: 1000, PixelX: 10,
	OriginY: 2000, PixelY: -10,
}

func TestResolveWindowInterior(t *testing.T) {
	// box covering pixels cols [2,5), rows [3,7) exactly
	box := geometry.NewBoundingBox(1020, 1930, 1050, 1970)

	window, err := ResolveWindow(testTransform, 100, 80, box)
	if err != nil {
		t.Fatal(err)
	}

	want := PixelWindow{ColOff: 2, RowOff: 3, Cols: 3, Rows: 4}
	if window != want {
		t.Errorf("window = %+v, want %+v", window, want)
	}
}

func TestResolveWindowExpandsOutward(t *testing.T) {
	// box edges fall mid-pixel; the window must grow to contain the box
	box := geometry.NewBoundingBox(1025, 1933, 1044, 1968)

	window, err := ResolveWindow(testTransform, 100, 80, box)
	if err != nil {
		t.Fatal(err)
	}

	want := PixelWindow{ColOff: 2, RowOff: 3, Cols: 3, Rows: 4}
	if window != want {
		t.Errorf("window = %+v, want %+v", window, want)
	}
}

func TestResolveWindowClampsToExtent(t *testing.T) {
	// box hanging over the north-west corner of the raster
	box := geometry.NewBoundingBox(900, 1950, 1030, 2100)

	window, err := ResolveWindow(testTransform, 100, 80, box)
	if err != nil {
		t.Fatal(err)
	}

	if window.ColOff != 0 || window.RowOff != 0 {
		t.Errorf("clamped window should start at the raster origin, got %+v", window)
	}
	if window.Cols != 3 || window.Rows != 5 {
		t.Errorf("window = %+v, want 3 cols and 5 rows inside the raster", window)
	}
}

func TestResolveWindowOutOfBounds(t *testing.T) {
	boxes := []*geometry.BoundingBox{
		geometry.NewBoundingBox(5000, 1900, 5100, 1950), // east of the raster
		geometry.NewBoundingBox(1020, 5000, 1050, 5100), // north of the raster
	}
	for _, box := range boxes {
		_, err := ResolveWindow(testTransform, 100, 80, box)
		var boundsErr *OutOfBoundsError
		if !errors.As(err, &boundsErr) {
			t.Errorf("box %+v: got %v, want OutOfBoundsError", box, err)
		}
	}
}

func TestResolveWindowSouthUpRaster(t *testing.T) {
	// positive PixelY flips the row axis; corner handling must not care
	southUp := geometry.Affine{
		OriginX: 1000, PixelX: 10,
		OriginY: 1200, PixelY: 10,
	}
	box := geometry.NewBoundingBox(1020, 1230, 1050, 1270)

	window, err := ResolveWindow(southUp, 100, 80, box)
	if err != nil {
		t.Fatal(err)
	}

	want := PixelWindow{ColOff: 2, RowOff: 3, Cols: 3, Rows: 4}
	if window != want {
		t.Errorf("window = %+v, want %+v", window, want)
	}
}

func TestResolveWindowShrinkingCropIdempotent(t *testing.T) {
	// cropping twice with a shrinking box must land on the same samples as
	// cropping once with the smaller box
	outer := geometry.NewBoundingBox(1020, 1900, 1070, 1970)
	inner := geometry.NewBoundingBox(1030, 1920, 1050, 1950)

	first, err := ResolveWindow(testTransform, 100, 80, outer)
	if err != nil {
		t.Fatal(err)
	}

	// a crop moves the affine origin to the window corner
	originX, originY := testTransform.Apply(float64(first.ColOff), float64(first.RowOff))
	cropped := testTransform
	cropped.OriginX = originX
	cropped.OriginY = originY

	second, err := ResolveWindow(cropped, first.Cols, first.Rows, inner)
	if err != nil {
		t.Fatal(err)
	}

	direct, err := ResolveWindow(testTransform, 100, 80, inner)
	if err != nil {
		t.Fatal(err)
	}

	composed := PixelWindow{
		ColOff: first.ColOff + second.ColOff,
		RowOff: first.RowOff + second.RowOff,
		Cols:   second.Cols,
		Rows:   second.Rows,
	}
	if composed != direct {
		t.Errorf("two-step crop resolved to %+v, single crop to %+v", composed, direct)
	}
}

func TestResolveWindowDegenerateTransform(t *testing.T) {
	flat := geometry.Affine{}
	box := geometry.NewBoundingBox(0, 0, 1, 1)
	if _, err := ResolveWindow(flat, 10, 10, box); err == nil {
		t.Error("expected error for a non-invertible transform")
	}
}

package tools

import (
	"math"
	"testing"
)

func TestEpsgCodeFromCRS(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"EPSG:3395", 3395},
		{"epsg:32633", 32633},
		{" EPSG:4326 ", 4326},
		{"3857", 3857},
	}
	for _, test := range tests {
		code, err := EpsgCodeFromCRS(test.in)
		if err != nil {
			t.Errorf("EpsgCodeFromCRS(%q) failed: %v", test.in, err)
			continue
		}
		if code != test.want {
			t.Errorf("EpsgCodeFromCRS(%q) = %d, want %d", test.in, code, test.want)
		}
	}

	for _, in := range []string{"", "EPSG:", "ESRI:102100", "EPSG:zero", "EPSG:-5", "0"} {
		if code, err := EpsgCodeFromCRS(in); err == nil {
			t.Errorf("EpsgCodeFromCRS(%q) = %d, want an error", in, code)
		}
	}
}

func TestTruncateToFloat32(t *testing.T) {
	if got := TruncateToFloat32(1.5); got != 1.5 {
		t.Errorf("TruncateToFloat32(1.5) = %f", got)
	}

	// values past the float32 range must clamp to zero, not infinity
	for _, in := range []float64{1e39, -1e39, math.MaxFloat64} {
		if got := TruncateToFloat32(in); got != 0 {
			t.Errorf("TruncateToFloat32(%g) = %f, want 0", in, got)
		}
	}
}

func TestIsFloatEqual(t *testing.T) {
	if !IsFloatEqual(1.0, 1.0+FloatMin/2) {
		t.Error("values inside the tolerance should compare equal")
	}
	if IsFloatEqual(1.0, 1.1) {
		t.Error("values outside the tolerance should not compare equal")
	}
}

package mesh

import (
	"math"
	"testing"
)

func TestNormalUnitLength(t *testing.T) {
	tri := Triangle{V: [3]Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 5},
		{X: 0, Y: 10, Z: 5},
	}}
	normal := tri.Normal()

	mag := math.Sqrt(float64(normal[0]*normal[0] + normal[1]*normal[1] + normal[2]*normal[2]))
	if math.Abs(mag-1) > 1e-6 {
		t.Errorf("normal %v has magnitude %f, want 1", normal, mag)
	}
	if normal[2] <= 0 {
		t.Errorf("counter-clockwise facet normal %v should point up", normal)
	}
}

func TestNormalAxisAligned(t *testing.T) {
	tri := Triangle{V: [3]Vertex{
		{X: 0, Y: 0, Z: 2},
		{X: 1, Y: 0, Z: 2},
		{X: 0, Y: 1, Z: 2},
	}}
	if normal := tri.Normal(); normal != [3]float32{0, 0, 1} {
		t.Errorf("flat facet normal = %v, want (0, 0, 1)", normal)
	}
}

func TestNormalDegenerateFacet(t *testing.T) {
	tests := []Triangle{
		// all three vertices coincide
		{V: [3]Vertex{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}},
		// collinear vertices
		{V: [3]Vertex{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 2, Y: 2, Z: 2}}},
	}
	for _, tri := range tests {
		if normal := tri.Normal(); normal != [3]float32{0, 0, 0} {
			t.Errorf("degenerate facet %v yielded normal %v, want zero", tri.V, normal)
		}
	}
}

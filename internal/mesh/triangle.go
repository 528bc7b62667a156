package mesh

import "math"

// Vertex is a mesh corner position in the working CRS's linear units, with Z
// already scaled. STL stores 32 bit floats, so precision is fixed here and
// not at serialization time.
type Vertex struct {
	X float32
	Y float32
	Z float32
}

// Triangle is a single facet. Vertices are wound counter-clockwise when seen
// from above, so the derived normal of an upward facing patch points up.
type Triangle struct {
	V [3]Vertex
}

// Normal returns the unit normal of the facet, the normalized cross product
// of (v1-v0) and (v2-v0). Degenerate facets with collinear vertices, which
// can show up along cropped borders, yield a zero normal instead of a
// division by a near-zero magnitude. All arithmetic stays in float32 for
// consistency with what STL consumers recompute.
func (t Triangle) Normal() [3]float32 {
	e1x := t.V[1].X - t.V[0].X
	e1y := t.V[1].Y - t.V[0].Y
	e1z := t.V[1].Z - t.V[0].Z

	e2x := t.V[2].X - t.V[0].X
	e2y := t.V[2].Y - t.V[0].Y
	e2z := t.V[2].Z - t.V[0].Z

	cx := e1y*e2z - e1z*e2y
	cy := e1z*e2x - e1x*e2z
	cz := e1x*e2y - e1y*e2x

	mag := float32(math.Sqrt(float64(cx*cx + cy*cy + cz*cz)))
	if mag < 1e-12 || math.IsInf(float64(mag), 0) {
		return [3]float32{0, 0, 0}
	}

	return [3]float32{cx / mag, cy / mag, cz / mag}
}

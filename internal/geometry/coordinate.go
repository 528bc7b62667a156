package geometry

// Coordinate holds a position in an arbitrary coordinate reference system.
// For geographic systems X is longitude and Y is latitude.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

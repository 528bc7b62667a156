package converters

// ElevationCorrector adjusts raw elevation samples before Z scaling is
// applied, e.g. to shift a dataset onto a different vertical datum or onto
// the print bed.
type ElevationCorrector interface {
	CorrectElevation(z float64) float64
}

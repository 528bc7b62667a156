package geometry

// BoundingBox is an axis aligned 2D extent. It is always normalized so that
// Xmin <= Xmax and Ymin <= Ymax, whatever corner order the caller used.
type BoundingBox struct {
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

func NewBoundingBox(x1, y1, x2, y2 float64) *BoundingBox {
	box := &BoundingBox{
		Xmin: x1,
		Ymin: y1,
		Xmax: x2,
		Ymax: y2,
	}
	if box.Xmin > box.Xmax {
		box.Xmin, box.Xmax = box.Xmax, box.Xmin
	}
	if box.Ymin > box.Ymax {
		box.Ymin, box.Ymax = box.Ymax, box.Ymin
	}
	return box
}

// NewGeographicBoundingBox builds a box from two opposing lat/lon corners.
// Corners are given lat first, the way they are written on a map, but the
// box stores lon as X and lat as Y to match projected coordinate order.
func NewGeographicBoundingBox(lat1, lon1, lat2, lon2 float64) *BoundingBox {
	return NewBoundingBox(lon1, lat1, lon2, lat2)
}

// Corners returns the four corner coordinates of the box in
// (ll, lr, ur, ul) order.
func (b *BoundingBox) Corners() [4]Coordinate {
	return [4]Coordinate{
		{X: b.Xmin, Y: b.Ymin},
		{X: b.Xmax, Y: b.Ymin},
		{X: b.Xmax, Y: b.Ymax},
		{X: b.Xmin, Y: b.Ymax},
	}
}

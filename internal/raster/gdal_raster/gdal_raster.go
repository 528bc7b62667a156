package gdal_raster

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/oliver-rew/topo-tool/internal/geometry"
	"github.com/oliver-rew/topo-tool/internal/raster"
)

var registerOnce sync.Once

// GdalDataset implements raster.Dataset on top of GDAL. Crop, Resample and
// Reproject each run the corresponding GDAL utility into an in-memory
// dataset and swap it in, so transforms can be chained without touching disk.
type GdalDataset struct {
	ds   *godal.Dataset
	path string
}

func Open(path string) (raster.Dataset, error) {
	registerOnce.Do(godal.RegisterAll)

	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raster [%s]: %w", path, err)
	}

	return &GdalDataset{ds: ds, path: path}, nil
}

func (d *GdalDataset) Info() (*raster.Info, error) {
	structure := d.ds.Structure()

	gt, err := d.ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("reading geotransform of [%s]: %w", d.path, err)
	}

	info := &raster.Info{
		Width:     structure.SizeX,
		Height:    structure.SizeY,
		Transform: geometry.AffineFromGeoTransform(gt),
	}

	bands := d.ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("no raster bands found in [%s]", d.path)
	}
	if nodata, ok := bands[0].NoData(); ok {
		info.NoData = nodata
		info.HasNoData = true
	}

	if sr := d.ds.SpatialRef(); sr != nil {
		if wkt, err := sr.WKT(); err == nil {
			info.Proj = wkt
		}
	}

	return info, nil
}

// NativeBoundingBox transforms a WGS84 lat/lon crop box into the dataset CRS.
// All four corners are transformed and re-normalized, since axis directions
// may flip under the projection.
func (d *GdalDataset) NativeBoundingBox(box *geometry.BoundingBox) (*geometry.BoundingBox, error) {
	srcSRS, err := godal.NewSpatialRefFromEPSG(4326)
	if err != nil {
		return nil, fmt.Errorf("creating WGS84 spatial ref: %w", err)
	}
	defer srcSRS.Close()

	dstSRS := d.ds.SpatialRef()
	if dstSRS == nil {
		return nil, fmt.Errorf("raster [%s] has no spatial reference, cannot resolve crop box (use -e to declare one)", d.path)
	}
	defer dstSRS.Close()

	transform, err := godal.NewTransform(srcSRS, dstSRS)
	if err != nil {
		return nil, fmt.Errorf("creating WGS84 transform: %w", err)
	}
	defer transform.Close()

	corners := box.Corners()
	xs := make([]float64, len(corners))
	ys := make([]float64, len(corners))
	for i, c := range corners {
		xs[i] = c.X
		ys[i] = c.Y
	}

	successful := make([]bool, len(corners))
	if err := transform.TransformEx(xs, ys, nil, successful); err != nil {
		return nil, fmt.Errorf("transforming crop box corners: %w", err)
	}
	for i, ok := range successful {
		if !ok {
			return nil, fmt.Errorf("crop corner (%f, %f) could not be transformed to the raster CRS", corners[i].Y, corners[i].X)
		}
	}

	native := geometry.NewBoundingBox(xs[0], ys[0], xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		if xs[i] < native.Xmin {
			native.Xmin = xs[i]
		}
		if xs[i] > native.Xmax {
			native.Xmax = xs[i]
		}
		if ys[i] < native.Ymin {
			native.Ymin = ys[i]
		}
		if ys[i] > native.Ymax {
			native.Ymax = ys[i]
		}
	}
	return native, nil
}

func (d *GdalDataset) Crop(window raster.PixelWindow) error {
	return d.translate([]string{
		"-of", "MEM",
		"-srcwin",
		strconv.Itoa(window.ColOff), strconv.Itoa(window.RowOff),
		strconv.Itoa(window.Cols), strconv.Itoa(window.Rows),
	})
}

// Resample decimates both axes by the given factor using block averaging.
// The reducer choice lives here rather than in the caller; nearest would be
// faster but aliases badly on steep terrain.
func (d *GdalDataset) Resample(factor float64) error {
	if err := raster.ValidateResampleFactor(factor); err != nil {
		return err
	}
	if factor == 1 {
		return nil
	}

	structure := d.ds.Structure()
	cols := scaledDimension(structure.SizeX, factor)
	rows := scaledDimension(structure.SizeY, factor)

	return d.translate([]string{
		"-of", "MEM",
		"-outsize", strconv.Itoa(cols), strconv.Itoa(rows),
		"-r", "average",
	})
}

func (d *GdalDataset) Reproject(crs string) error {
	warped, err := d.ds.Warp("", []string{
		"-of", "MEM",
		"-t_srs", crs,
		"-r", "near",
	})
	if err != nil {
		return fmt.Errorf("reprojecting [%s] to %s: %w", d.path, crs, err)
	}
	d.swap(warped)
	return nil
}

func (d *GdalDataset) Grid() (*raster.Grid, error) {
	info, err := d.Info()
	if err != nil {
		return nil, err
	}

	data := make([]float32, info.Width*info.Height)
	band := d.ds.Bands()[0]
	if err := band.Read(0, 0, data, info.Width, info.Height); err != nil {
		return nil, fmt.Errorf("reading band 1 of [%s]: %w", d.path, err)
	}

	return &raster.Grid{
		Rows:      info.Height,
		Cols:      info.Width,
		Data:      data,
		Transform: info.Transform,
		NoData:    info.NoData,
		HasNoData: info.HasNoData,
	}, nil
}

func (d *GdalDataset) Close() error {
	if d.ds == nil {
		return nil
	}
	err := d.ds.Close()
	d.ds = nil
	return err
}

func (d *GdalDataset) translate(switches []string) error {
	out, err := d.ds.Translate("", switches)
	if err != nil {
		return fmt.Errorf("gdal translate %v on [%s]: %w", switches, d.path, err)
	}
	d.swap(out)
	return nil
}

func (d *GdalDataset) swap(next *godal.Dataset) {
	_ = d.ds.Close()
	d.ds = next
}

func scaledDimension(size int, factor float64) int {
	scaled := int(float64(size) * factor)
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

package pipeline

import "github.com/oliver-rew/topo-tool/internal/geometry"

// ConvertOptions carries everything the conversion pipeline needs, assembled
// from command line flags and config defaults.
type ConvertOptions struct {
	Input  string // input raster file or folder
	Output string // output STL path, or folder in batch mode

	ZScale  float64 // multiplier applied to every elevation sample
	ZOffset float64 // linear unit offset added to samples before scaling

	TargetCRS      string                // e.g. "EPSG:3395"; empty keeps the source CRS
	ResampleFactor float64               // decimation factor in (0, 1]; 1 keeps full resolution
	Crop           *geometry.BoundingBox // WGS84 lat/lon crop box; nil disables cropping
	SourceSrid     int                   // declared EPSG code of the raster CRS; 0 trusts the dataset

	Ascii bool // write ASCII STL instead of binary
	Force bool // allow geographic/unitless working CRS

	FolderProcessing bool // convert every raster found in the input folder
	Recursive        bool // recurse into subfolders when scanning
}

// InspectOptions selects a mesh for the inspect command.
type InspectOptions struct {
	Input string
}

// IConverter runs the full raster to mesh conversion.
type IConverter interface {
	RunConverter(opts *ConvertOptions) error
}

// IInspector reads a written mesh back and reports on it.
type IInspector interface {
	RunInspector(opts *InspectOptions) error
}

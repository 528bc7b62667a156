package pkg

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/golang/glog"

	"github.com/oliver-rew/topo-tool/internal/geometry"
	"github.com/oliver-rew/topo-tool/internal/mesh"
	"github.com/oliver-rew/topo-tool/internal/mesher"
	"github.com/oliver-rew/topo-tool/internal/pipeline"
	"github.com/oliver-rew/topo-tool/internal/raster"
	"github.com/oliver-rew/topo-tool/internal/raster/gdal_raster"
	"github.com/oliver-rew/topo-tool/pkg/algorithm_manager"
	"github.com/oliver-rew/topo-tool/tools"
)

type Converter struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager

	// openDataset is the raster backend seam; tests swap in a fake.
	openDataset func(path string) (raster.Dataset, error)
}

func NewConverter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) pipeline.IConverter {
	return &Converter{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		openDataset:      gdal_raster.Open,
	}
}

// Starts the conversion process
func (converter *Converter) RunConverter(opts *pipeline.ConvertOptions) error {
	defer converter.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	if err := converter.validateParameters(opts); err != nil {
		return err
	}

	glog.Infoln("Preparing list of rasters to process...")
	rasterFiles := converter.fileFinder.GetRasterFilesToProcess(opts)
	glog.Infoln("raster_file list", rasterFiles)
	if len(rasterFiles) == 0 {
		return fmt.Errorf("no raster files found in [%s]", opts.Input)
	}

	if opts.FolderProcessing {
		if err := tools.CreateDirectoryIfDoesNotExist(opts.Output); err != nil {
			return &mesh.WriteError{Path: opts.Output, Err: err}
		}
	}

	for i, filePath := range rasterFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(rasterFiles)))
		if err := converter.convertFile(filePath, converter.outputPathFor(filePath, opts), opts); err != nil {
			return err
		}
		glog.Infoln("> done processing", filepath.Base(filePath))
	}

	return nil
}

// validateParameters rejects bad numeric parameters and unprojected target
// systems before any dataset is opened.
func (converter *Converter) validateParameters(opts *pipeline.ConvertOptions) error {
	if err := raster.ValidateResampleFactor(opts.ResampleFactor); err != nil {
		return err
	}

	if tools.IsFloatEqual(opts.ZScale, 0) {
		return &raster.InvalidParameterError{
			Name:  "zscale",
			Value: opts.ZScale,
			Want:  "a non-zero multiplier",
		}
	}

	if opts.TargetCRS != "" {
		code, err := tools.EpsgCodeFromCRS(opts.TargetCRS)
		if err != nil {
			return &raster.InvalidParameterError{
				Name:  "reproject target",
				Value: opts.TargetCRS,
				Want:  "an EPSG identifier like EPSG:3395",
			}
		}

		geographic, err := converter.algorithmManager.GetCoordinateConverterAlgorithm().IsGeographicSrid(code)
		if err != nil {
			return err
		}
		if geographic && !opts.Force {
			return &raster.InvalidParameterError{
				Name:  "reproject target",
				Value: opts.TargetCRS,
				Want:  "a projected CRS (degree unit targets mesh badly; -force overrides)",
			}
		}
	}

	return nil
}

func (converter *Converter) outputPathFor(inputPath string, opts *pipeline.ConvertOptions) string {
	if !opts.FolderProcessing {
		return opts.Output
	}
	return filepath.Join(opts.Output, getFilenameWithoutExtension(inputPath)+".stl")
}

func (converter *Converter) convertFile(inputPath string, outputPath string, opts *pipeline.ConvertOptions) error {
	glog.Infoln("> reading raster...", filepath.Base(inputPath))

	dataset, err := converter.openDataset(inputPath)
	if err != nil {
		return err
	}
	defer func() { _ = dataset.Close() }()

	info, err := dataset.Info()
	if err != nil {
		return err
	}
	glog.Infof("raster %dx%d transform %v nodata (%f, declared=%t)",
		info.Width, info.Height, info.Transform.GeoTransform(), info.NoData, info.HasNoData)
	if info.Proj != "" {
		glog.Infoln("crs:", info.Proj)
	}

	if err := converter.checkWorkingCRS(info, opts); err != nil {
		return err
	}

	// crop, resample, reproject, cheapest first: shrinking the raster early
	// keeps the reprojection kernel from chewing on samples that get thrown
	// away anyway
	if opts.Crop != nil {
		if err := converter.cropDataset(dataset, info, opts); err != nil {
			return err
		}
	}

	if !tools.IsFloatEqual(opts.ResampleFactor, 1) {
		tools.LogOutput("resampling at factor", opts.ResampleFactor)
		if err := dataset.Resample(opts.ResampleFactor); err != nil {
			return err
		}
	}

	if opts.TargetCRS != "" {
		tools.LogOutput("reprojecting to", opts.TargetCRS)
		if err := dataset.Reproject(opts.TargetCRS); err != nil {
			return err
		}
	}

	grid, err := dataset.Grid()
	if err != nil {
		return err
	}
	glog.Infof("grid %dx%d pixel size (%f, %f)", grid.Cols, grid.Rows, grid.Transform.PixelX, grid.Transform.PixelY)

	return converter.exportMesh(grid, inputPath, outputPath, opts)
}

// checkWorkingCRS refuses unprojected or unitless working systems unless
// forced. Degree XY units against metre Z need an absurd zscale to look like
// terrain; reprojecting is the real fix.
func (converter *Converter) checkWorkingCRS(info *raster.Info, opts *pipeline.ConvertOptions) error {
	if opts.TargetCRS != "" {
		// final CRS is the reprojection target, validated up front
		return nil
	}

	var geographic bool
	if opts.SourceSrid != 0 {
		var err error
		geographic, err = converter.algorithmManager.GetCoordinateConverterAlgorithm().IsGeographicSrid(opts.SourceSrid)
		if err != nil {
			return err
		}
	} else {
		geographic = info.LooksGeographic()
	}

	if !geographic {
		return nil
	}
	if opts.Force {
		glog.Warning("working CRS looks unprojected; continuing because -force is set, expect a distorted mesh")
		return nil
	}
	return &raster.InvalidParameterError{
		Name:  "working CRS",
		Value: "geographic",
		Want:  "a projected CRS; reproject with '-p EPSG:3395' or override with -force",
	}
}

func (converter *Converter) cropDataset(dataset raster.Dataset, info *raster.Info, opts *pipeline.ConvertOptions) error {
	var nativeBox *geometry.BoundingBox
	var err error

	if opts.SourceSrid != 0 {
		coordinateConverter := converter.algorithmManager.GetCoordinateConverterAlgorithm()
		nativeBox, err = coordinateConverter.Convert2DBoundingboxToSrid(opts.Crop, 4326, opts.SourceSrid)
	} else {
		nativeBox, err = dataset.NativeBoundingBox(opts.Crop)
	}
	if err != nil {
		return err
	}

	window, err := raster.ResolveWindow(info.Transform, info.Width, info.Height, nativeBox)
	if err != nil {
		return err
	}

	tools.LogOutput("cropping to window", tools.FmtJSONString(window))
	return dataset.Crop(window)
}

// exportMesh triangulates the grid with one consumer per CPU and streams the
// facets to the STL writer. Consumers hand back banded batches; the writer
// merges them in band order, so the file is identical to a sequential walk.
func (converter *Converter) exportMesh(grid *raster.Grid, inputPath string, outputPath string, opts *pipeline.ConvertOptions) error {
	triangulator := mesher.NewTriangulator(grid, opts.ZScale, converter.algorithmManager.GetElevationCorrectionAlgorithm())
	glog.Infof("mesh cells %dx%d, up to %d facets", triangulator.CellCols(), triangulator.CellRows(), triangulator.MaxFacets())

	writer, err := mesh.NewStlWriter(outputPath, opts.Ascii, triangulator.MaxFacets())
	if err != nil {
		return err
	}

	numConsumers := runtime.NumCPU()

	workChannel := make(chan *mesher.WorkUnit, numConsumers*5)
	facetChannel := make(chan *mesher.FacetBatch, numConsumers*5)

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	producer := mesher.NewStandardProducer(triangulator)
	go producer.Produce(workChannel, &waitGroup)

	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := mesher.NewStandardConsumer(triangulator)
		go consumer.Consume(workChannel, facetChannel, &waitGroup)
	}

	go func() {
		waitGroup.Wait()
		close(facetChannel)
	}()

	// merge batches back into band order; on a write failure keep draining
	// so the consumers can finish, but stop writing
	var writeErr error
	pending := make(map[int][]mesh.Triangle)
	next := 0
	for batch := range facetChannel {
		if writeErr != nil {
			continue
		}
		pending[batch.Index] = batch.Facets
		for {
			facets, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			for _, facet := range facets {
				if writeErr = writer.WriteTriangle(facet); writeErr != nil {
					break
				}
			}
			if writeErr != nil {
				break
			}
		}
	}

	if writeErr != nil {
		writer.Abort()
		return writeErr
	}

	if writer.Written() == 0 {
		writer.Abort()
		return &pipeline.EmptyMeshError{Input: inputPath}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	tools.LogOutput("wrote", writer.Written(), "facets to", outputPath)
	return nil
}

func getFilenameWithoutExtension(filePath string) string {
	nameWext := filepath.Base(filePath)
	extension := filepath.Ext(nameWext)
	return nameWext[0 : len(nameWext)-len(extension)]
}

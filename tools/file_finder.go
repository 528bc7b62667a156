package tools

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/oliver-rew/topo-tool/internal/pipeline"
)

// Raster extensions picked up when scanning a folder. GDAL opens plenty of
// other formats, single files of any format still work through -i.
var rasterExtensions = map[string]bool{
	".tif":  true,
	".tiff": true,
	".vrt":  true,
	".dem":  true,
	".hgt":  true,
	".asc":  true,
}

type FileFinder interface {
	GetRasterFilesToProcess(opts *pipeline.ConvertOptions) []string
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetRasterFilesToProcess(opts *pipeline.ConvertOptions) []string {
	// If folder processing is not enabled the input flag names a single
	// raster, otherwise scan the input folder, skipping nested folders
	// unless Recursive is set.
	if !opts.FolderProcessing {
		return []string{opts.Input}
	}

	return f.getRasterFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getRasterFilesFromInputFolder(opts *pipeline.ConvertOptions) []string {
	var rasterFiles = make([]string, 0)

	baseInfo, _ := os.Stat(opts.Input)
	err := filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			}
			if !info.IsDir() && rasterExtensions[strings.ToLower(filepath.Ext(info.Name()))] {
				rasterFiles = append(rasterFiles, path)
			}
			return nil
		},
	)

	if err != nil {
		log.Fatal(err)
	}

	return rasterFiles
}

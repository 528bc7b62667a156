package tools

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/oliver-rew/topo-tool/internal/geometry"
)

const (
	CommandConvert = "convert"
	CommandInspect = "inspect"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type FlagsForCommandConvert struct {
	Input            *string  `json:"input"`
	Output           *string  `json:"output"`
	ZScale           *float64 `json:"zscale"`
	ZOffset          *float64 `json:"zoffset"`
	Reproject        *string  `json:"reproject"`
	Resample         *float64 `json:"resample"`
	Crop             *string  `json:"crop"`
	Srid             *int     `json:"srid"`
	Ascii            *bool    `json:"ascii"`
	Force            *bool    `json:"force"`
	FolderProcessing *bool    `json:"folder"`
	Recursive        *bool    `json:"recursive"`
	Config           *string  `json:"config"`
	Silent           *bool
	LogTimestamp     *bool
	Help             *bool

	// FlagSet that parsed the command, kept for help output
	FlagSet *flag.FlagSet
}

type FlagsForCommandInspect struct {
	Input *string `json:"input"`
	Help  *bool

	FlagSet *flag.FlagSet
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of topo-tool.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

// ParseFlagsForCommandConvert parses the convert flags. Parse failures are
// returned instead of exiting so the caller controls the exit code.
func ParseFlagsForCommandConvert(args []string) (FlagsForCommandConvert, error) {
	flagCommand := flag.NewFlagSet("command-convert", flag.ContinueOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Input raster file, or folder with -folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Output STL path, or output folder with -folder.")
	zscale := defineFloat64FlagCommand(flagCommand, "zscale", "z", 1.0, "Z scale multiplier applied to every elevation sample.")
	zoffset := defineFloat64FlagCommand(flagCommand, "zoffset", "", 0, "Vertical offset added to samples before scaling, in linear units.")
	reproject := defineStringFlagCommand(flagCommand, "reproject", "p", "", "Target CRS to reproject into, e.g. EPSG:3395. Omit to keep the source CRS.")
	resample := defineFloat64FlagCommand(flagCommand, "resample", "s", 1.0, "Decimation factor in (0,1]. 0.125 keeps 1 of every 8 samples per axis.")
	crop := defineStringFlagCommand(flagCommand, "crop", "c", "", "Crop box as two opposing lat/lon corners: \"lat1,lon1,lat2,lon2\". Corner order does not matter.")
	srid := defineIntFlagCommand(flagCommand, "srid", "e", 0, "EPSG code of the raster CRS, overriding the dataset metadata for crop resolution.")
	ascii := defineBoolFlagCommand(flagCommand, "ascii", "a", false, "Write ASCII STL instead of binary.")
	force := defineBoolFlagCommand(flagCommand, "force", "f", false, "Proceed even when the working CRS looks unprojected or unitless.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "", false, "Convert all rasters found in the input folder. Output must be a folder.")
	recursive := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Recurse into subfolders when scanning the input folder.")
	config := defineStringFlagCommand(flagCommand, "config", "", "", "TOML file providing defaults for the flags above.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "", false, "Suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flags := FlagsForCommandConvert{
		Input:            input,
		Output:           output,
		ZScale:           zscale,
		ZOffset:          zoffset,
		Reproject:        reproject,
		Resample:         resample,
		Crop:             crop,
		Srid:             srid,
		Ascii:            ascii,
		Force:            force,
		FolderProcessing: folderProcessing,
		Recursive:        recursive,
		Config:           config,
		Silent:           silent,
		LogTimestamp:     logTimestamp,
		Help:             help,
		FlagSet:          flagCommand,
	}

	if err := flagCommand.Parse(args); err != nil {
		return flags, err
	}

	if err := applyConfigDefaults(flagCommand, &flags); err != nil {
		return flags, err
	}
	return flags, nil
}

func ParseFlagsForCommandInspect(args []string) (FlagsForCommandInspect, error) {
	flagCommand := flag.NewFlagSet("command-inspect", flag.ContinueOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Binary STL file to inspect.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flags := FlagsForCommandInspect{
		Input:   input,
		Help:    help,
		FlagSet: flagCommand,
	}

	if err := flagCommand.Parse(args); err != nil {
		return flags, err
	}
	return flags, nil
}

// ParseCropCorners parses the -c flag value: four comma separated floats,
// two opposing corners given lat first.
func ParseCropCorners(value string) (*geometry.BoundingBox, error) {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(parts) != 4 {
		return nil, fmt.Errorf("crop wants 4 corner values \"lat1,lon1,lat2,lon2\", got %d in %q", len(parts), value)
	}

	var corners [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad crop corner value %q: %w", part, err)
		}
		corners[i] = v
	}

	return geometry.NewGeographicBoundingBox(corners[0], corners[1], corners[2], corners[3]), nil
}

func defineStringFlag(name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flag.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

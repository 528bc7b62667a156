package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/oliver-rew/topo-tool/internal/pipeline"
	"github.com/oliver-rew/topo-tool/pkg"
	"github.com/oliver-rew/topo-tool/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/oliver-rew/topo-tool/tools"
)

const VERSION = "1.0.2"

const logo = `
 _                          _              _
| |_ ___  _ __   ___       | |_ ___   ___ | |
| __/ _ \| '_ \ / _ \ _____| __/ _ \ / _ \| |
| || (_) | |_) | (_) |_____| || (_) | (_) | |
 \__\___/| .__/ \___/       \__\___/ \___/|_|
         |_|   elevation rasters in, printable STL meshes out
`

func main() {
	log.SetPrefix("[topo-tool] ")
	log.SetFlags(0)

	flagsGlobal := tools.ParseFlagsGlobal()

	if *flagsGlobal.Version {
		printVersion()
		return
	}
	if *flagsGlobal.Help {
		showHelp(flag.CommandLine)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		showHelp(flag.CommandLine)
		log.Fatal("Please specify a subcommand [convert|inspect].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandConvert:
		mainCommandConvert(args)
	case tools.CommandInspect:
		mainCommandInspect(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [convert|inspect]", cmd)
	}
}

func mainCommandConvert(args []string) {
	flags, err := tools.ParseFlagsForCommandConvert(args)
	if err != nil {
		log.Println("Error parsing input parameters:", err)
		os.Exit(pipeline.ExitInvalidParameter)
	}

	if *flags.Help {
		showHelp(flags.FlagSet)
		return
	}

	if *flags.Silent {
		tools.DisableLogger()
	} else {
		fmt.Println(logo)
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	opts := pipeline.ConvertOptions{
		Input:            *flags.Input,
		Output:           *flags.Output,
		ZScale:           *flags.ZScale,
		ZOffset:          *flags.ZOffset,
		TargetCRS:        *flags.Reproject,
		ResampleFactor:   *flags.Resample,
		SourceSrid:       *flags.Srid,
		Ascii:            *flags.Ascii,
		Force:            *flags.Force,
		FolderProcessing: *flags.FolderProcessing,
		Recursive:        *flags.Recursive,
	}

	if *flags.Crop != "" {
		box, err := tools.ParseCropCorners(*flags.Crop)
		if err != nil {
			log.Println("Error parsing input parameters:", err)
			os.Exit(pipeline.ExitInvalidParameter)
		}
		opts.Crop = box
	}

	if msg, res := validateOptionsForCommandConvert(&opts); !res {
		log.Println("Error parsing input parameters: " + msg)
		os.Exit(pipeline.ExitInvalidParameter)
	}

	converter := pkg.NewConverter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(&opts))
	if err := converter.RunConverter(&opts); err != nil {
		log.Println("Error while converting:", err)
		os.Exit(pipeline.ExitCode(err))
	}

	tools.LogOutput("Conversion Completed")
}

// Validates the options provided to the convert command, checking that input
// and output paths make sense before the pipeline spins up
func validateOptionsForCommandConvert(opts *pipeline.ConvertOptions) (string, bool) {
	if opts.Input == "" {
		return "Input raster not specified, use -i", false
	}
	if opts.Output == "" {
		return "Output path not specified, use -o", false
	}
	if !tools.FileExists(opts.Input) {
		return "Input file/folder not found", false
	}
	if opts.FolderProcessing && !tools.IsDirectory(opts.Input) {
		return "Input must be a folder when -folder is specified", false
	}
	if !opts.FolderProcessing && tools.IsDirectory(opts.Input) {
		return "Input is a folder, use -folder to convert its contents", false
	}
	return "", true
}

func mainCommandInspect(args []string) {
	flags, err := tools.ParseFlagsForCommandInspect(args)
	if err != nil {
		log.Println("Error parsing input parameters:", err)
		os.Exit(pipeline.ExitInvalidParameter)
	}

	if *flags.Help {
		showHelp(flags.FlagSet)
		return
	}

	if *flags.Input == "" || !tools.FileExists(*flags.Input) {
		log.Println("Error parsing input parameters: input STL not found, use -i")
		os.Exit(pipeline.ExitInvalidParameter)
	}

	opts := pipeline.InspectOptions{
		Input: *flags.Input,
	}

	if err := pkg.NewInspector().RunInspector(&opts); err != nil {
		log.Println("Error while inspecting:", err)
		os.Exit(pipeline.ExitCode(err))
	}
}

func showHelp(flagSet *flag.FlagSet) {
	fmt.Println(logo)
	fmt.Println("***")
	fmt.Println("topo-tool converts gridded elevation data (GeoTIFF and friends) into STL surface meshes for 3D printing or visualization.")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: topo-tool convert -i <raster> -o <mesh.stl> [flags]")
	fmt.Println("       topo-tool inspect -i <mesh.stl>")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flagSet.SetOutput(os.Stdout)
	flagSet.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}

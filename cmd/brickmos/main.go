// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/merschformann/brickmos"
	"github.com/merschformann/brickmos/web"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

// Exit codes of the program.
const (
	ExitSuccess         = 0
	ExitPaletteMissing  = 1
	ExitImageMissing    = 2
	ExitInvalidSize     = 3
	ExitInvalidGridCell = 4
	ExitFailure         = 5
)

// options are the parsed command line arguments.
type options struct {
	imageFile   string
	colorFile   string
	outputDir   string
	spares      int
	size        string
	gridCell    string
	noPreview   bool
	metric      string
	resample    string
	routines    int
	previewAddr string
	previewAge  time.Duration
	verbose     bool
}

func newFlagSet(opts *options, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("brickmos", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, "brickmos: 'Mosaicify' an image using brick colors and export bill of material")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage: brickmos -i <image> [options]")
		fs.PrintDefaults()
	}
	const imageUsage = "the image to process"
	fs.StringVar(&opts.imageFile, "image_file", "", imageUsage)
	fs.StringVar(&opts.imageFile, "i", "", imageUsage+" (shorthand)")
	fs.StringVar(&opts.colorFile, "color_file", "",
		"the csv-file defining the brick-colors to be used (if not given, the built-in BrickLink colors are used)")
	const outUsage = "the directory the output image and BOM is written to"
	fs.StringVar(&opts.outputDir, "output_directory", ".", outUsage)
	fs.StringVar(&opts.outputDir, "o", ".", outUsage+" (shorthand)")
	fs.IntVar(&opts.spares, "spares", 0,
		"the number of spares to add per color/brick (bricklink), just in case of loosing some bricks")
	fs.StringVar(&opts.size, "size", "48x48", "the size of the mosaic in bricks")
	fs.StringVar(&opts.gridCell, "grid_cell", "8x8",
		fmt.Sprintf("the size of a helper grid cell in bricks ('%s' removes the grid)", brickmos.NoGrid))
	fs.BoolVar(&opts.noPreview, "no_preview", false, "don't serve the preview after creating the mosaic")
	fs.StringVar(&opts.metric, "metric", brickmos.DefaultMetricName,
		"the color distance, one of: "+strings.Join(brickmos.GetColorMetricNames(), ", "))
	fs.StringVar(&opts.resample, "resample", brickmos.ResampleLinear,
		"how the image is scaled to the mosaic size, one of: "+strings.Join(brickmos.GetResamplerNames(), ", "))
	fs.IntVar(&opts.routines, "routines", runtime.NumCPU(), "the number of go routines used for quantization")
	fs.StringVar(&opts.previewAddr, "preview_addr", "localhost:8085", "the address the preview is served on")
	fs.DurationVar(&opts.previewAge, "preview_max_age", 0,
		"remove previews not accessed for this duration (0 keeps them until exit)")
	fs.BoolVar(&opts.verbose, "verbose", false, "print debug output")
	return fs
}

func fileExists(path string) bool {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(expanded)
	return statErr == nil
}

// exitCode maps errors returned by brickmos.Run to exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, brickmos.ErrPaletteFileMissing):
		return ExitPaletteMissing
	case errors.Is(err, os.ErrNotExist) && brickmos.IsInputError(err):
		return ExitImageMissing
	default:
		return ExitFailure
	}
}

// buildConfig validates the options and returns the pipeline configuration.
// On error the exit code to use is returned.
func buildConfig(opts *options, out io.Writer) (brickmos.Config, int) {
	cfg := brickmos.DefaultConfig()
	if opts.colorFile != "" && !fileExists(opts.colorFile) {
		fmt.Fprintf(out, "No color definition file found at %s, exiting ...\n", opts.colorFile)
		return cfg, ExitPaletteMissing
	}
	if !fileExists(opts.imageFile) {
		fmt.Fprintf(out, "Cannot find image file at %s, exiting ...\n", opts.imageFile)
		return cfg, ExitImageMissing
	}
	width, height, sizeErr := brickmos.ParseDimensions(opts.size)
	if sizeErr != nil {
		fmt.Fprintf(out, "Cannot parse --size argument. Got %s, but wanted something like 48x48\n", opts.size)
		return cfg, ExitInvalidSize
	}
	cellWidth, cellHeight, cellErr := brickmos.ParseGridCell(opts.gridCell)
	if cellErr != nil {
		fmt.Fprintf(out, "Cannot parse --grid_cell argument. Got %s, but wanted something like 8x8\n", opts.gridCell)
		return cfg, ExitInvalidGridCell
	}
	cfg.PalettePath = opts.colorFile
	cfg.Spares = opts.spares
	cfg.Width, cfg.Height = width, height
	cfg.GridCellWidth, cfg.GridCellHeight = cellWidth, cellHeight
	cfg.NumRoutines = opts.routines
	cfg.Metric = opts.metric
	cfg.Resample = opts.resample
	cfg.Verbose = opts.verbose
	outDir, dirErr := brickmos.ExpandPath("", opts.outputDir)
	if dirErr != nil {
		fmt.Fprintln(out, "Error: Can't get output directory:", dirErr)
		return cfg, ExitFailure
	}
	cfg.OutputDir = outDir
	return cfg, ExitSuccess
}

// run executes the program and returns the exit code.
func run(args []string, out io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, out)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		return ExitFailure
	}
	if opts.verbose || brickmos.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if opts.imageFile == "" {
		fmt.Fprintln(out, "No image given, use -i <image>")
		fs.Usage()
		return ExitImageMissing
	}
	cfg, code := buildConfig(&opts, out)
	if code != ExitSuccess {
		return code
	}
	imagePath, pathErr := brickmos.ExpandPath("", opts.imageFile)
	if pathErr != nil {
		fmt.Fprintln(out, "Error: Can't get image path:", pathErr)
		return ExitFailure
	}
	res, runErr := brickmos.Run(cfg, imagePath, out)
	if runErr != nil {
		fmt.Fprintln(out, "Error:", runErr)
		return exitCode(runErr)
	}
	if opts.noPreview {
		return ExitSuccess
	}
	if err := servePreview(opts.previewAddr, opts.previewAge, res); err != nil {
		log.WithError(err).Error("Preview server failed")
		return ExitFailure
	}
	return ExitSuccess
}

// filterInterval returns how often expired previews are removed.
func filterInterval(maxAge time.Duration) time.Duration {
	interval := maxAge / 10
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// servePreview serves the result until the process is interrupted. If maxAge
// is positive previews not accessed for maxAge are removed.
func servePreview(addr string, maxAge time.Duration, res *brickmos.Result) error {
	storage := web.NewMemStorage()
	id, addErr := web.AddResult(storage, res)
	if addErr != nil {
		return addErr
	}
	context := web.NewContext(storage)
	if maxAge > 0 {
		stop := context.RunFilter(maxAge, filterInterval(maxAge))
		defer close(stop)
	}
	mux := http.NewServeMux()
	web.DefaultHandlers(context, mux)
	server := &http.Server{Addr: addr, Handler: mux}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()
	fmt.Printf("Preview at http://%s%s%s (press Ctrl+C to quit)\n", addr, web.PreviewPrefix, id)
	select {
	case err := <-serveErr:
		return err
	case <-interrupt:
		return server.Close()
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

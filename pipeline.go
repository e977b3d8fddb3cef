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

package brickmos

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// Names of the files written by Run.
const (
	InputFileName     = "1.input.jpg"
	PixelatedFileName = "2.pixelated.jpg"
	OutputFileName    = "3.output.jpg"
	InventoryFileName = "bricklink.xml"
)

// Config describes one mosaic run.
type Config struct {
	// PalettePath is the file to read the palette from. If empty and Palette is
	// nil the DefaultPalette is used.
	PalettePath string

	// Palette is used if not nil, PalettePath is ignored in this case.
	Palette Palette

	// Spares is the number of bricks added to each lot of the inventory.
	Spares int

	// Width and Height are the number of tiles of the mosaic.
	Width, Height int

	// GridCellWidth and GridCellHeight describe the helper grid drawn on the
	// output, a line is drawn every GridCellWidth tiles. If one of them is 0 no
	// grid is drawn.
	GridCellWidth, GridCellHeight int

	// OutputDir is the directory all files are written to, it is created if it
	// does not exist.
	OutputDir string

	// DisplayWidth and DisplayHeight are the size of the written images.
	DisplayWidth, DisplayHeight int

	// JPGQuality is the quality between 1 and 100 used when storing images.
	JPGQuality int

	// NumRoutines is the number of go routines used for quantization.
	NumRoutines int

	// Metric is the name of a registered color metric, see GetColorMetric.
	Metric string

	// Resample is the name of the resampler used to pixelate the image, see
	// GetResampler. Defaults to linear interpolation.
	Resample string

	// Verbose enables progress output.
	Verbose bool
}

// DefaultConfig returns the default configuration: the default palette, a
// 48x48 mosaic with a helper grid every 8 tiles and no spares.
func DefaultConfig() Config {
	numRoutines := runtime.NumCPU()
	if numRoutines <= 0 {
		numRoutines = 4
	}
	return Config{
		Width:          48,
		Height:         48,
		GridCellWidth:  8,
		GridCellHeight: 8,
		OutputDir:      ".",
		DisplayWidth:   1000,
		DisplayHeight:  1000,
		JPGQuality:     DefaultJPGQuality,
		NumRoutines:    numRoutines,
		Metric:         DefaultMetricName,
		Resample:       ResampleLinear,
	}
}

// HasGrid returns true if a helper grid should be drawn.
func (cfg Config) HasGrid() bool {
	return cfg.GridCellWidth > 0 && cfg.GridCellHeight > 0
}

// Validate checks the numeric options of the config.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: mosaic size %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	case cfg.DisplayWidth <= 0 || cfg.DisplayHeight <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalidDimensions, cfg.DisplayWidth, cfg.DisplayHeight)
	case cfg.GridCellWidth < 0 || cfg.GridCellHeight < 0:
		return fmt.Errorf("%w: grid cell %dx%d", ErrInvalidDimensions, cfg.GridCellWidth, cfg.GridCellHeight)
	case cfg.Spares < 0:
		return fmt.Errorf("Number of spares must be ≥ 0, got %d", cfg.Spares)
	case cfg.JPGQuality < 1 || cfg.JPGQuality > 100:
		return fmt.Errorf("JPG quality must be between 1 and 100, got %d", cfg.JPGQuality)
	}
	if _, ok := GetColorMetric(cfg.metricName()); !ok {
		return fmt.Errorf("Unknown metric %s", cfg.Metric)
	}
	if _, ok := GetResampler(cfg.Resample); !ok {
		return fmt.Errorf("Unknown resampler %s", cfg.Resample)
	}
	return nil
}

func (cfg Config) metricName() string {
	if cfg.Metric == "" {
		return DefaultMetricName
	}
	return cfg.Metric
}

// LoadPalette returns the palette described by the config.
func (cfg Config) LoadPalette() (Palette, error) {
	var palette Palette
	switch {
	case cfg.Palette != nil:
		palette = cfg.Palette
	case cfg.PalettePath != "":
		var err error
		if palette, err = LoadPaletteFile(cfg.PalettePath); err != nil {
			return nil, err
		}
	default:
		palette = DefaultPalette()
	}
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	return palette, nil
}

// Result contains everything computed in a run.
type Result struct {
	// ID identifies the run in log messages and the preview.
	ID uuid.UUID

	Palette   Palette
	Grid      *MosaicGrid
	Stats     *UsageStats
	Inventory *Inventory

	// Input, Pixelated and Output are the images as written to the output
	// directory (all of display size).
	Input, Pixelated, Output image.Image

	// Files are the paths of all written files.
	Files []string
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	res := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(res, res.Bounds(), img, bounds.Min, draw.Src)
	return res
}

// Run creates the mosaic for the image at imagePath. It prints the color
// summary to out, writes the BrickLink inventory and the input, pixelated and
// output image to the output directory.
func Run(cfg Config, imagePath string, out io.Writer) (*Result, error) {
	res, err := run(cfg, imagePath, out)
	if err != nil {
		runsFailed.Inc()
		return nil, err
	}
	runsSucceeded.Inc()
	return res, nil
}

func run(cfg Config, imagePath string, out io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	totalStart := time.Now()
	res := &Result{ID: uuid.New()}
	logger := log.WithField("run", res.ID.String())

	palette, paletteErr := cfg.LoadPalette()
	if paletteErr != nil {
		return nil, paletteErr
	}
	res.Palette = palette
	logger.WithField("colors", len(palette)).Debug("Palette loaded")

	img, imgErr := LoadImage(imagePath)
	if imgErr != nil {
		return nil, imgErr
	}
	img = DropAlpha(img)
	bounds := img.Bounds()
	logger.WithFields(log.Fields{
		"image":  imagePath,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("Image loaded")

	resampler, _ := GetResampler(cfg.Resample)
	pixelated, pixelErr := Pixelate(img, cfg.Width, cfg.Height, resampler)
	if pixelErr != nil {
		return nil, pixelErr
	}

	metric, _ := GetColorMetric(cfg.metricName())
	matcher, matcherErr := NewMatcher(palette, metric)
	if matcherErr != nil {
		return nil, matcherErr
	}
	var progress ProgressFunc
	if cfg.Verbose {
		progress = LoggerProgressFunc("Quantizing rows", cfg.Height, IntMax(1, cfg.Height/10))
	}
	start := time.Now()
	grid, stats, quantizeErr := Quantize(pixelated, matcher, cfg.NumRoutines, progress)
	if quantizeErr != nil {
		return nil, quantizeErr
	}
	res.Grid, res.Stats = grid, stats
	logger.WithFields(log.Fields{
		"tiles":    stats.Total(),
		"colors":   stats.Len(),
		"duration": time.Since(start),
	}).Debug("Mosaic quantized")

	inventory, invErr := ExportInventory(stats, palette, cfg.Spares)
	if invErr != nil {
		return nil, invErr
	}
	res.Inventory = inventory
	if err := WriteSummary(out, stats, palette); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, err
	}
	invPath := filepath.Join(cfg.OutputDir, InventoryFileName)
	if err := inventory.WriteInventoryFile(invPath); err != nil {
		return nil, fmt.Errorf("Can't write inventory %s: %w", invPath, err)
	}
	res.Files = append(res.Files, invPath)

	if err := res.render(cfg, img, pixelated); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name string
		img  image.Image
	}{
		{InputFileName, res.Input},
		{PixelatedFileName, res.Pixelated},
		{OutputFileName, res.Output},
	} {
		path := filepath.Join(cfg.OutputDir, f.name)
		if err := SaveImage(path, f.img, cfg.JPGQuality); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
	}
	logger.WithFields(log.Fields{
		"files":    len(res.Files),
		"duration": time.Since(totalStart),
	}).Info("Mosaic created")
	return res, nil
}

// render creates the display versions of the input, the pixelated image and
// the mosaic.
func (res *Result) render(cfg Config, img, pixelated image.Image) error {
	var err error
	if res.Input, err = Enlarge(img, cfg.DisplayWidth, cfg.DisplayHeight, NearestResizer); err != nil {
		return err
	}
	if res.Pixelated, err = Enlarge(pixelated, cfg.DisplayWidth, cfg.DisplayHeight, NearestResizer); err != nil {
		return err
	}
	output, outErr := Enlarge(res.Grid.Image(), cfg.DisplayWidth, cfg.DisplayHeight, NearestResizer)
	if outErr != nil {
		return outErr
	}
	rgba := toRGBA(output)
	if cfg.HasGrid() {
		DrawGrid(rgba, cfg.Width, cfg.Height, cfg.GridCellWidth, cfg.GridCellHeight)
	}
	res.Output = rgba
	return nil
}

// IsInputError returns true if err was caused by the image that should be
// converted (it can't be read or doesn't exist).
func IsInputError(err error) bool {
	var decodeErr *ImageDecodeError
	return errors.As(err, &decodeErr)
}

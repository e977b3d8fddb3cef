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
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestImage writes a png with a red left half and a blue right half.
func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	draw.Draw(img, image.Rect(0, 0, 32, 32), image.NewUniform(color.RGBA{250, 5, 5, 255}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(32, 0, 64, 32), image.NewUniform(color.RGBA{5, 5, 250, 255}), image.Point{}, draw.Src)
	path := filepath.Join(dir, "input.png")
	require.NoError(t, SaveImage(path, img, DefaultJPGQuality))
	return path
}

func testConfig(outDir string) Config {
	cfg := DefaultConfig()
	cfg.Palette = Palette{testRed, testBlue}
	cfg.Width, cfg.Height = 8, 4
	cfg.GridCellWidth, cfg.GridCellHeight = 2, 2
	cfg.DisplayWidth, cfg.DisplayHeight = 80, 40
	cfg.OutputDir = outDir
	cfg.Spares = 1
	return cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out", "nested")
	var out bytes.Buffer
	res, err := Run(testConfig(outDir), writeTestImage(t, dir), &out)
	require.NoError(t, err)

	assert.Equal(t, 8, res.Grid.Width)
	assert.Equal(t, 4, res.Grid.Height)
	assert.Equal(t, 32, res.Stats.Total())
	assert.Equal(t, map[PaletteEntry]int{testRed: 16, testBlue: 16}, res.Stats.ByEntry(res.Palette))
	assert.Equal(t, testRed, res.Grid.At(0, 0))
	assert.Equal(t, testBlue, res.Grid.At(7, 3))
	assert.Equal(t, 34, res.Inventory.TotalQuantity())
	assert.True(t, strings.HasPrefix(out.String(), "Colors (2 colors, 32 tiles):\n"))

	for _, name := range []string{InventoryFileName, InputFileName, PixelatedFileName, OutputFileName} {
		path := filepath.Join(outDir, name)
		assert.Contains(t, res.Files, path)
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, name)
	}
	for _, img := range []image.Image{res.Input, res.Pixelated, res.Output} {
		assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())
	}
	// helper grid line on the left border
	assert.Equal(t, NewRGB(0, 0, 0), ConvertRGB(res.Output.At(0, 20)))

	f, err := os.Open(filepath.Join(outDir, InventoryFileName))
	require.NoError(t, err)
	defer f.Close()
	inv, err := ParseInventory(f)
	require.NoError(t, err)
	assert.Equal(t, res.Inventory.Items, inv.Items)
}

func TestRunAverageNoGrid(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Resample = ResampleAverage
	cfg.GridCellWidth, cfg.GridCellHeight = 0, 0
	cfg.NumRoutines = 1
	var out bytes.Buffer
	res, err := Run(cfg, writeTestImage(t, dir), &out)
	require.NoError(t, err)
	assert.Equal(t, NewRGB(255, 0, 0), ConvertRGB(res.Output.At(0, 20)))
}

func TestRunMissingImage(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(testConfig(dir), filepath.Join(dir, "missing.png"), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunMissingPalette(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Palette = nil
	cfg.PalettePath = filepath.Join(dir, "colors.csv")
	_, err := Run(cfg, writeTestImage(t, dir), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrPaletteFileMissing)
	assert.False(t, IsInputError(err))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	tests := []func(cfg *Config){
		func(cfg *Config) { cfg.Width = 0 },
		func(cfg *Config) { cfg.DisplayHeight = -1 },
		func(cfg *Config) { cfg.GridCellWidth = -2 },
		func(cfg *Config) { cfg.Spares = -1 },
		func(cfg *Config) { cfg.JPGQuality = 101 },
		func(cfg *Config) { cfg.Metric = "cie2000" },
		func(cfg *Config) { cfg.Resample = "cubic" },
	}
	for i, modify := range tests {
		cfg := DefaultConfig()
		modify(&cfg)
		assert.Error(t, cfg.Validate(), "case %d", i)
	}
}

func TestConfigLoadPalette(t *testing.T) {
	palette, err := DefaultConfig().LoadPalette()
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette(), palette)

	cfg := DefaultConfig()
	cfg.Palette = Palette{}
	_, err = cfg.LoadPalette()
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestRunTransparentInput(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 0})
		}
	}
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, SaveImage(path, img, DefaultJPGQuality))

	cfg := testConfig(dir)
	cfg.Palette = DefaultPalette()
	res, err := Run(cfg, path, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, map[PaletteEntry]int{cfg.Palette[0]: 32}, res.Stats.ByEntry(cfg.Palette))
	assert.Equal(t, "White", cfg.Palette[0].Name)
}

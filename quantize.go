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
	"image"
	"time"
)

// MosaicGrid is the result of a quantization: each cell holds the index of a
// palette entry. Cells are stored row by row.
type MosaicGrid struct {
	Width, Height int
	Palette       Palette
	Cells         []int
}

// NewMosaicGrid returns a grid of the given size, all cells are set to -1
// (unassigned).
func NewMosaicGrid(width, height int, p Palette) *MosaicGrid {
	cells := make([]int, width*height)
	for i := range cells {
		cells[i] = -1
	}
	return &MosaicGrid{Width: width, Height: height, Palette: p, Cells: cells}
}

// Index returns the palette index of the cell in column x and row y.
func (g *MosaicGrid) Index(x, y int) int {
	return g.Cells[y*g.Width+x]
}

// At returns the palette entry of the cell in column x and row y.
func (g *MosaicGrid) At(x, y int) PaletteEntry {
	return g.Palette[g.Index(x, y)]
}

// Image returns an image with one pixel per cell.
func (g *MosaicGrid) Image() *image.RGBA {
	res := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			res.SetRGBA(x, y, g.At(x, y).Color.RGBA())
		}
	}
	return res
}

// quantizeRow matches all pixels in row y (relative to the bounds of src).
func quantizeRow(src image.Image, m *Matcher, grid *MosaicGrid, y int, stats *UsageStats) error {
	bounds := src.Bounds()
	for x := 0; x < grid.Width; x++ {
		c := ConvertRGB(src.At(bounds.Min.X+x, bounds.Min.Y+y))
		index, err := m.Nearest(c)
		if err != nil {
			return err
		}
		grid.Cells[y*grid.Width+x] = index
		stats.Increment(index)
	}
	return nil
}

// QuantizeSequential replaces each pixel of src by the nearest palette entry
// of the matcher. It returns the resulting grid (same size as src) and the
// number of tiles per palette entry.
//
// Pixels are visited row by row.
func QuantizeSequential(src image.Image, m *Matcher) (*MosaicGrid, *UsageStats, error) {
	if err := m.Palette.Validate(); err != nil {
		return nil, nil, err
	}
	start := time.Now()
	bounds := src.Bounds()
	grid := NewMosaicGrid(bounds.Dx(), bounds.Dy(), m.Palette)
	stats := NewUsageStats()
	for y := 0; y < grid.Height; y++ {
		if err := quantizeRow(src, m, grid, y, stats); err != nil {
			return nil, nil, err
		}
	}
	tilesQuantized.Add(float64(stats.Total()))
	quantizeDuration.Observe(time.Since(start).Seconds())
	return grid, stats, nil
}

// Quantize works as QuantizeSequential but processes rows concurrently
// (how many go routines run concurrently can be controlled by numRoutines).
// Each row is counted in its own stats, the row stats are merged in row order
// once all rows are done. Thus the result is exactly the same as the one of
// QuantizeSequential.
//
// progress is called after each row (can be nil).
func Quantize(src image.Image, m *Matcher, numRoutines int, progress ProgressFunc) (*MosaicGrid, *UsageStats, error) {
	if err := m.Palette.Validate(); err != nil {
		return nil, nil, err
	}
	if numRoutines <= 0 {
		numRoutines = 1
	}
	start := time.Now()
	bounds := src.Bounds()
	grid := NewMosaicGrid(bounds.Dx(), bounds.Dy(), m.Palette)
	rowStats := make([]*UsageStats, grid.Height)
	// any error that occurs sets this variable (first error)
	var err error

	jobs := make(chan int, BufferSize)
	errorChan := make(chan error, BufferSize)
	for w := 0; w < numRoutines; w++ {
		go func() {
			for y := range jobs {
				stats := NewUsageStats()
				rowErr := quantizeRow(src, m, grid, y, stats)
				rowStats[y] = stats
				errorChan <- rowErr
			}
		}()
	}

	go func() {
		for y := 0; y < grid.Height; y++ {
			jobs <- y
		}
		close(jobs)
	}()

	for i := 0; i < grid.Height; i++ {
		nextErr := <-errorChan
		if nextErr != nil && err == nil {
			err = nextErr
		}
		if progress != nil {
			progress(i + 1)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	res := NewUsageStats()
	for _, stats := range rowStats {
		res.Merge(stats)
	}
	tilesQuantized.Add(float64(res.Total()))
	quantizeDuration.Observe(time.Since(start).Seconds())
	return grid, res, nil
}

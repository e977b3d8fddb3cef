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
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

const (
	// gridLineFraction is the width of a grid line relative to the smaller
	// image dimension.
	gridLineFraction = 0.002
)

// GridLineColor is the color of the helper grid.
var GridLineColor color.Color = color.Black

// GridLineWidth returns the width of helper grid lines for an image of the
// given size (at least one pixel).
func GridLineWidth(width, height int) int {
	w := int(math.Round(gridLineFraction * float64(IntMin(width, height))))
	return IntMax(w, 1)
}

// lineStart returns the first coordinate of a line of the given width
// centered at pos, moved inside [min, max) if required.
func lineStart(pos, width, min, max int) int {
	start := pos - width/2
	if start+width > max {
		start = max - width
	}
	if start < min {
		start = min
	}
	return start
}

// DrawGrid draws a helper grid on img, which shows a mosaic with cols x rows
// tiles. A line is drawn every spacingX tiles horizontally and every spacingY
// tiles vertically, including the image borders if the number of tiles is a
// multiple of the spacing. A spacing ≤ 0 draws no lines in that direction.
func DrawGrid(img draw.Image, cols, rows, spacingX, spacingY int) {
	bounds := img.Bounds()
	division := NewFixedNumDivider(cols, rows).Divide(bounds)
	if division == nil {
		return
	}
	lineWidth := GridLineWidth(bounds.Dx(), bounds.Dy())
	src := image.NewUniform(GridLineColor)
	if spacingX > 0 {
		for j := 0; j <= cols; j++ {
			if j%spacingX != 0 {
				continue
			}
			var x int
			if j == cols {
				x = division.Get(cols-1, 0).Max.X
			} else {
				x = division.Get(j, 0).Min.X
			}
			x0 := lineStart(x, lineWidth, bounds.Min.X, bounds.Max.X)
			line := image.Rect(x0, bounds.Min.Y, x0+lineWidth, bounds.Max.Y)
			draw.Draw(img, line.Intersect(bounds), src, image.Point{}, draw.Src)
		}
	}
	if spacingY > 0 {
		for i := 0; i <= rows; i++ {
			if i%spacingY != 0 {
				continue
			}
			var y int
			if i == rows {
				y = division.Get(0, rows-1).Max.Y
			} else {
				y = division.Get(0, i).Min.Y
			}
			y0 := lineStart(y, lineWidth, bounds.Min.Y, bounds.Max.Y)
			line := image.Rect(bounds.Min.X, y0, bounds.Max.X, y0+lineWidth)
			draw.Draw(img, line.Intersect(bounds), src, image.Point{}, draw.Src)
		}
	}
}

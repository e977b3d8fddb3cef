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
)

// TileDivision represents the divison of an image into rectangles, one
// rectangle for each tile of the mosaic.
//
// Tiles are not stored in the fashion (x, y) but (y, x). That means each entry
// in the division describes one row of the image.
// The get method does this correctly.
type TileDivision [][]image.Rectangle

// Get returns the rectangle at position div[y][x], that is the rectangle
// in row y and column x.
func (div TileDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// Size returns the number of rectangles in the division.
func (div TileDivision) Size() int {
	res := 0
	for _, row := range div {
		res += len(row)
	}
	return res
}

// FixedNumDivider divides an image into a given number of tiles.
//
// Example: Suppose you want to divide an image with width 100 into 48 tiles.
// Tile j starts at 100 * j / 48, so tiles have a width of 2 or 3 pixels and
// the last tile ends exactly at the image border. This is (up to rounding) the
// area a tile covers when the mosaic is enlarged to the image size.
type FixedNumDivider struct {
	NumX, NumY int
}

// NewFixedNumDivider returns a new FixedNumDivider given the number of tiles in
// x and y direction.
func NewFixedNumDivider(numX, numY int) *FixedNumDivider {
	return &FixedNumDivider{NumX: numX, NumY: numY}
}

// Divide returns the tiles of an image with the given bounds. The result is
// nil if the image is empty or the number of tiles is not positive.
func (divider *FixedNumDivider) Divide(bounds image.Rectangle) TileDivision {
	// no division possible if empty
	if bounds.Empty() || divider.NumX <= 0 || divider.NumY <= 0 {
		return nil
	}
	imgWidth := bounds.Dx()
	imgHeight := bounds.Dy()
	res := make(TileDivision, divider.NumY)
	for i := 0; i < divider.NumY; i++ {
		res[i] = make([]image.Rectangle, divider.NumX)
		y0 := bounds.Min.Y + (i*imgHeight)/divider.NumY
		y1 := bounds.Min.Y + ((i+1)*imgHeight)/divider.NumY
		for j := 0; j < divider.NumX; j++ {
			x0 := bounds.Min.X + (j*imgWidth)/divider.NumX
			x1 := bounds.Min.X + ((j+1)*imgWidth)/divider.NumX
			res[i][j] = image.Rect(x0, y0, x1, y1)
		}
	}
	return res
}

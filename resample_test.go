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
	"image/draw"
	"testing"

	"github.com/nfnt/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(bounds image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestPixelateUniform(t *testing.T) {
	src := uniformImage(image.Rect(0, 0, 120, 90), color.RGBA{200, 40, 10, 255})
	for _, name := range GetResamplerNames() {
		resizer, ok := GetResampler(name)
		require.True(t, ok)
		res, err := Pixelate(src, 12, 9, resizer)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 12, 9), res.Bounds())
		c := ConvertRGB(res.At(5, 5))
		assert.InDelta(t, 200, int(c.R), 2, name)
		assert.InDelta(t, 40, int(c.G), 2, name)
		assert.InDelta(t, 10, int(c.B), 2, name)
	}
}

func TestPixelateInvalid(t *testing.T) {
	src := uniformImage(image.Rect(0, 0, 10, 10), color.White)
	_, err := Pixelate(src, 0, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = Enlarge(image.NewRGBA(image.Rectangle{}), 10, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestEnlargeKeepsColors(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	src.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	src.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	res, err := Enlarge(src, 4, 4, nil)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, src.RGBAAt(x/2, y/2), res.At(x, y), "pixel %d/%d", x, y)
		}
	}
}

func TestAverageResizer(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	draw.Draw(src, image.Rect(0, 0, 2, 2), image.NewUniform(color.RGBA{255, 0, 0, 255}), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(2, 0, 4, 2), image.NewUniform(color.RGBA{0, 0, 255, 255}), image.Point{}, draw.Src)

	res := AverageResizer{}.Resize(2, 1, src)
	assert.Equal(t, NewRGB(255, 0, 0), ConvertRGB(res.At(0, 0)))
	assert.Equal(t, NewRGB(0, 0, 255), ConvertRGB(res.At(1, 0)))

	assert.Equal(t, NewRGB(127, 0, 127), AverageColor(src, image.Rect(1, 0, 3, 1)))
	assert.Equal(t, RGB{}, AverageColor(src, image.Rect(10, 10, 20, 20)))
}

func TestAverageResizerUpscale(t *testing.T) {
	white := uniformImage(image.Rect(0, 0, 4, 4), color.White)
	resizer, ok := GetResampler(ResampleAverage)
	require.True(t, ok)
	res, err := Pixelate(white, 8, 8, resizer)
	require.NoError(t, err)
	matcher, err := NewMatcher(DefaultPalette(), nil)
	require.NoError(t, err)
	_, stats, err := Quantize(res, matcher, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Len())
	assert.Equal(t, 64, stats.Count(0), "all tiles must be White")

	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})
	wide := AverageResizer{}.Resize(4, 3, src)
	for y := 0; y < 3; y++ {
		assert.Equal(t, NewRGB(255, 0, 0), ConvertRGB(wide.At(0, y)))
		assert.Equal(t, NewRGB(255, 0, 0), ConvertRGB(wide.At(1, y)))
		assert.Equal(t, NewRGB(0, 0, 255), ConvertRGB(wide.At(2, y)))
		assert.Equal(t, NewRGB(0, 0, 255), ConvertRGB(wide.At(3, y)))
	}
}

func TestPixelateIgnoresAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, uint8(x * 40)})
		}
	}
	palette := DefaultPalette()
	for _, name := range GetResamplerNames() {
		resizer, ok := GetResampler(name)
		require.True(t, ok)
		res, err := Pixelate(src, 2, 2, resizer)
		require.NoError(t, err)
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				entry, err := Match(ConvertRGB(res.At(x, y)), palette)
				require.NoError(t, err)
				assert.Equal(t, "White", entry.Name, "%s pixel %d/%d", name, x, y)
			}
		}
	}
}

func TestGetResampler(t *testing.T) {
	r, ok := GetResampler("")
	assert.True(t, ok)
	assert.Equal(t, LinearResizer, r)
	r, ok = GetResampler(ResampleLinear)
	assert.True(t, ok)
	assert.Equal(t, LinearResizer, r)
	r, ok = GetResampler(ResampleBicubic)
	assert.True(t, ok)
	assert.Equal(t, NewNfntResizer(resize.Bicubic), r)
	r, ok = GetResampler(ResampleNearest)
	assert.True(t, ok)
	assert.Equal(t, NewNfntResizer(resize.NearestNeighbor), r)
	_, ok = GetResampler("cubic")
	assert.False(t, ok)

	assert.Equal(t, []string{"average", "bicubic", "lanczos", "linear", "mitchell", "nearest"},
		GetResamplerNames())
}

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
	"sort"
)

// AverageColor computes the average color of the pixels of img inside r.
// r is intersected with the image bounds first, for an empty area black is
// returned.
func AverageColor(img image.Image, r image.Rectangle) RGB {
	// just to be sure we use big integers, depending on the image size we might
	// get problems
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return RGB{}
	}
	var red, green, blue uint64
	numPixels := uint64(r.Dx() * r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			rgb := ConvertRGB(img.At(x, y))
			red += uint64(rgb.R)
			green += uint64(rgb.G)
			blue += uint64(rgb.B)
		}
	}
	red /= numPixels
	green /= numPixels
	blue /= numPixels
	return RGB{R: uint8(red), G: uint8(green), B: uint8(blue)}
}

// sampleArea returns r if it contains at least one pixel. Otherwise r is
// widened to one pixel in each empty direction, that is the source pixel the
// tile lies on.
func sampleArea(r image.Rectangle) image.Rectangle {
	if r.Dx() == 0 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() == 0 {
		r.Max.Y = r.Min.Y + 1
	}
	return r
}

// AverageResizer is an ImageResizer that divides the image into width x height
// tiles (see FixedNumDivider) and uses the average color of each tile.
// If the image is smaller than the target in one direction some tiles don't
// contain a pixel, such tiles get the color of the pixel they lie on.
type AverageResizer struct{}

// Resize implements ImageResizer.
func (AverageResizer) Resize(width, height uint, img image.Image) image.Image {
	res := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	division := NewFixedNumDivider(int(width), int(height)).Divide(img.Bounds())
	for y, row := range division {
		for x, r := range row {
			res.SetRGBA(x, y, AverageColor(img, sampleArea(r)).RGBA())
		}
	}
	return res
}

// Names of the resamplers, see GetResampler.
const (
	ResampleNearest  = "nearest"
	ResampleLinear   = "linear"
	ResampleBicubic  = "bicubic"
	ResampleMitchell = "mitchell"
	ResampleLanczos  = "lanczos"
	ResampleAverage  = "average"
)

// interpolationQuality maps the names of the interpolating resamplers to the
// quality passed to GetInterP.
var interpolationQuality = map[string]uint{
	ResampleNearest:  0,
	ResampleLinear:   1,
	ResampleBicubic:  2,
	ResampleMitchell: 3,
	ResampleLanczos:  4,
}

// GetResampler returns the resizer used to pixelate an image given its name.
// "average" uses the average color of each tile, all other names select an
// interpolation function of nfnt/resize (see GetInterP). An empty name
// selects linear interpolation.
func GetResampler(name string) (ImageResizer, bool) {
	switch name {
	case "":
		return LinearResizer, true
	case ResampleAverage:
		return AverageResizer{}, true
	}
	quality, has := interpolationQuality[name]
	if !has {
		return nil, false
	}
	return NewNfntResizer(GetInterP(quality)), true
}

// GetResamplerNames returns the names accepted by GetResampler (sorted).
func GetResamplerNames() []string {
	res := make([]string, 0, len(interpolationQuality)+1)
	for name := range interpolationQuality {
		res = append(res, name)
	}
	res = append(res, ResampleAverage)
	sort.Strings(res)
	return res
}

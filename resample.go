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
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}

// ScaleResizer uses an interpolator from golang.org/x/image/draw to resize an
// image. The result is always an *image.RGBA.
type ScaleResizer struct {
	Interpolator draw.Interpolator
}

// NewScaleResizer returns a new resizer given the interpolator.
func NewScaleResizer(interpolator draw.Interpolator) ScaleResizer {
	return ScaleResizer{interpolator}
}

// Resize scales img to exactly width and height.
func (resizer ScaleResizer) Resize(width, height uint, img image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	resizer.Interpolator.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

var (
	// LinearResizer blends source pixels, it is used to create the pixelated
	// image the mosaic is computed from.
	LinearResizer ImageResizer = NewNfntResizer(GetInterP(1))

	// NearestResizer never introduces new colors, it is used to enlarge the
	// mosaic for display.
	NearestResizer ImageResizer = NewScaleResizer(draw.NearestNeighbor)
)

// GetInterP returns the nfnt interpolation function for a quality between 0
// (nearest neighbor, keeps the colors of single source pixels) and 4
// (Lanczos3, smoothest). Values greater than 4 are treated as 4.
// GetResampler maps names to these qualities.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	default:
		return resize.Lanczos3
	}
}

func resizeTo(img image.Image, width, height int, resizer ImageResizer) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: can't resize to %dx%d", ErrInvalidDimensions, width, height)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image is empty", ErrInvalidDimensions)
	}
	return resizer.Resize(uint(width), uint(height), img), nil
}

// Pixelate resizes img to the size of the mosaic (one pixel per tile).
// If resizer is nil LinearResizer is used. The alpha channel of img is
// ignored, see DropAlpha.
func Pixelate(img image.Image, width, height int, resizer ImageResizer) (image.Image, error) {
	if resizer == nil {
		resizer = LinearResizer
	}
	return resizeTo(DropAlpha(img), width, height, resizer)
}

// Enlarge resizes img to the display size. If resizer is nil NearestResizer is
// used.
func Enlarge(img image.Image, width, height int, resizer ImageResizer) (image.Image, error) {
	if resizer == nil {
		resizer = NearestResizer
	}
	return resizeTo(img, width, height, resizer)
}

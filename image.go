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
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
type SupportedImageFunc func(ext string) bool

// JPGAndPNG is an implementation of SupportedImageFunc accepting jpg and png
// file extensions. These are the formats images can be written in.
func JPGAndPNG(ext string) bool {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// Decodable is an implementation of SupportedImageFunc accepting all
// extensions LoadImage is able to decode.
func Decodable(ext string) bool {
	if JPGAndPNG(ext) {
		return true
	}
	switch strings.ToLower(ext) {
	case ".gif", ".bmp", ".webp":
		return true
	default:
		return false
	}
}

// RGB is a color containing r, g and b components.
//
// This is the channel order used for all distance computations, colors from
// images must be converted with ConvertRGB before they're compared with
// palette entries.
type RGB struct {
	R, G, B uint8
}

// NewRGB returns a new RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// ConvertRGB converts a generic color into the internal RGB representation.
// The alpha channel is dropped: the result is the stored (non-premultiplied)
// color, a fully transparent white pixel is still white.
func ConvertRGB(c color.Color) RGB {
	// convert to non-premultiplied model
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	// convert to internal rgb representation
	return RGB{R: nrgba.R, G: nrgba.G, B: nrgba.B}
}

// DropAlpha returns an opaque version of img: each pixel keeps its stored
// color (see ConvertRGB) and gets alpha 255. Opaque images are returned
// unchanged.
//
// Resizers blend premultiplied colors, images must be flattened before they
// are resized or transparent areas turn black.
func DropAlpha(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	res := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			res.SetRGBA(x, y, ConvertRGB(img.At(x, y)).RGBA())
		}
	}
	return res
}

// RGBA returns the opaque color.RGBA for c.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Colorful returns the color as a go-colorful color.
func (c RGB) Colorful() colorful.Color {
	col, _ := colorful.MakeColor(c.RGBA())
	return col
}

// Hex returns the hex representation of the color, for example "#ff0000".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

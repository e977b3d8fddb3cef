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
	_ "image/gif" // register gif decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"  // register bmp decoder
	_ "golang.org/x/image/webp" // register webp decoder
)

// DefaultJPGQuality is the quality used when storing jpg images.
const DefaultJPGQuality = 95

// ExpandPath returns the absolute path given some other path.
// The idea is the following: If the user inputs a path we have two cases:
// The user used an absolute path, in this case we use this absolute path.
// If it is a relative path we join the base directory with this path.
// If base is empty the working directory is used.
//
// The home directory can be used like on Unix: ~/Pictures is the Pictures
// directory in the home directory of the user.
func ExpandPath(base, path string) (string, error) {
	res, pathErr := homedir.Expand(path)
	if pathErr != nil {
		return "", pathErr
	}
	if !filepath.IsAbs(res) && base != "" {
		res = filepath.Join(base, res)
	}
	return filepath.Abs(res)
}

// LoadImage reads an image from a file. Supported are jpg, png, gif, bmp and
// webp files.
// All errors are of type *ImageDecodeError, if the file does not exist the
// error wraps os.ErrNotExist.
func LoadImage(path string) (image.Image, error) {
	r, openErr := os.Open(path)
	if openErr != nil {
		return nil, &ImageDecodeError{Path: path, Err: openErr}
	}
	defer r.Close()
	img, _, decodeErr := image.Decode(r)
	if decodeErr != nil {
		return nil, &ImageDecodeError{Path: path, Err: decodeErr}
	}
	return img, nil
}

// SaveImage writes img to the file, the format is chosen by the file
// extension (jpg or png). All errors are of type *ImageEncodeError.
func SaveImage(path string, img image.Image, jpgQuality int) (err error) {
	ext := filepath.Ext(path)
	if !JPGAndPNG(ext) {
		return &ImageEncodeError{Path: path,
			Err: fmt.Errorf("Unsupported file type: %s, expected .jpg or .png", ext)}
	}
	outFile, outErr := os.Create(path)
	if outErr != nil {
		return &ImageEncodeError{Path: path, Err: outErr}
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = &ImageEncodeError{Path: path, Err: closeErr}
		}
	}()
	var encErr error
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(outFile, img, &jpeg.Options{Quality: jpgQuality})
	default:
		encErr = png.Encode(outFile, img)
	}
	if encErr != nil {
		return &ImageEncodeError{Path: path, Err: encErr}
	}
	return nil
}

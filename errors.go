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
)

var (
	// ErrEmptyPalette is returned if a color should be matched against a palette
	// without any entries.
	ErrEmptyPalette = errors.New("Palette is empty")

	// ErrPaletteFileMissing is returned if a palette file does not exist.
	ErrPaletteFileMissing = errors.New("Palette file not found")
)

// PaletteParseError is returned if a line of a palette definition is
// malformed.
type PaletteParseError struct {
	// Line is the line number (starting with 1, including the header).
	Line int
	// Text is the content of the line.
	Text string
	// Reason describes what is wrong with the line.
	Reason string
	// Err is the underlying error, if any (for example from strconv).
	Err error
}

func (err *PaletteParseError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("Invalid palette line %d (%q): %s: %v", err.Line, err.Text, err.Reason, err.Err)
	}
	return fmt.Sprintf("Invalid palette line %d (%q): %s", err.Line, err.Text, err.Reason)
}

func (err *PaletteParseError) Unwrap() error {
	return err.Err
}

// ImageDecodeError is returned if an image can't be read.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (err *ImageDecodeError) Error() string {
	return fmt.Sprintf("Can't read image %s: %v", err.Path, err.Err)
}

func (err *ImageDecodeError) Unwrap() error {
	return err.Err
}

// ImageEncodeError is returned if an image can't be written.
type ImageEncodeError struct {
	Path string
	Err  error
}

func (err *ImageEncodeError) Error() string {
	return fmt.Sprintf("Can't write image %s: %v", err.Path, err.Err)
}

func (err *ImageEncodeError) Unwrap() error {
	return err.Err
}

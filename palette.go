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
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// PaletteEntry is one brick color: the color itself together with the
// BrickLink identifiers needed to order it.
//
// Entries are values, two entries with the same fields are interchangeable.
type PaletteEntry struct {
	Color RGB
	// Name is the human readable name, for example "Red".
	Name string
	// ColorID is the BrickLink color id.
	ColorID string
	// PartID is the BrickLink part id, for example 3024 (plate 1x1).
	PartID string
}

// NewPaletteEntry returns a new palette entry.
func NewPaletteEntry(c RGB, name, colorID, partID string) PaletteEntry {
	return PaletteEntry{Color: c, Name: name, ColorID: colorID, PartID: partID}
}

// Hex returns the hex representation of the entry color.
func (e PaletteEntry) Hex() string {
	return e.Color.Hex()
}

func (e PaletteEntry) String() string {
	return fmt.Sprintf("%s / %s / %s / %s", e.Color, e.Name, e.ColorID, e.PartID)
}

// Palette is the ordered list of colors a mosaic is built from.
// The order is important: If a color has the same distance to multiple entries
// the first one wins.
type Palette []PaletteEntry

// Validate returns ErrEmptyPalette if the palette has no entries.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPalette
	}
	return nil
}

// Index returns the position of the first entry equal to e or -1.
func (p Palette) Index(e PaletteEntry) int {
	for i, other := range p {
		if other == e {
			return i
		}
	}
	return -1
}

func parseComponent(s string) (uint8, error) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if val < 0 || val > 255 {
		return 0, fmt.Errorf("component %d not in range [0, 255]", val)
	}
	return uint8(val), nil
}

// ParsePaletteLine parses a single line of the form "R,G,B;Name;ColorId;PartId".
// lineNum is only used for the error.
func ParsePaletteLine(line string, lineNum int) (PaletteEntry, error) {
	fields := strings.Split(line, ";")
	if len(fields) < 4 {
		return PaletteEntry{}, &PaletteParseError{Line: lineNum, Text: line,
			Reason: fmt.Sprintf("expected 4 fields separated by ';', got %d", len(fields))}
	}
	rgb := strings.Split(fields[0], ",")
	if len(rgb) != 3 {
		return PaletteEntry{}, &PaletteParseError{Line: lineNum, Text: line,
			Reason: fmt.Sprintf("expected 3 color components, got %d", len(rgb))}
	}
	var components [3]uint8
	for i, s := range rgb {
		val, err := parseComponent(s)
		if err != nil {
			return PaletteEntry{}, &PaletteParseError{Line: lineNum, Text: line,
				Reason: "invalid color component", Err: err}
		}
		components[i] = val
	}
	return NewPaletteEntry(NewRGB(components[0], components[1], components[2]),
		strings.TrimSpace(fields[1]),
		strings.TrimSpace(fields[2]),
		strings.TrimSpace(fields[3])), nil
}

// ParsePalette reads a palette definition. The first line is a header and
// ignored, each other line must be of the form "R,G,B;Name;ColorId;PartId".
// Empty lines are skipped.
//
// Errors for malformed lines are of type *PaletteParseError.
func ParsePalette(r io.Reader) (Palette, error) {
	scanner := bufio.NewScanner(r)
	res := make(Palette, 0)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			// header
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParsePaletteLine(line, lineNum)
		if err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ParsePaletteString works as ParsePalette but reads from a string.
func ParsePaletteString(s string) (Palette, error) {
	return ParsePalette(strings.NewReader(s))
}

// LoadPaletteFile reads a palette definition from a file, see ParsePalette for
// the format. "~" is expanded to the home directory.
// If the file does not exist the error wraps ErrPaletteFileMissing.
func LoadPaletteFile(path string) (Palette, error) {
	expanded, expandErr := homedir.Expand(path)
	if expandErr != nil {
		return nil, expandErr
	}
	f, openErr := os.Open(expanded)
	if openErr != nil {
		if errors.Is(openErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPaletteFileMissing, expanded)
		}
		return nil, openErr
	}
	defer f.Close()
	palette, parseErr := ParsePalette(f)
	if parseErr != nil {
		return nil, fmt.Errorf("Can't parse palette %s: %w", expanded, parseErr)
	}
	return palette, nil
}

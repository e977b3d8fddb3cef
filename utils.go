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
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	// Debug is true if code should be compiled in debug mode, printing
	// more stuff and performing checks.
	Debug = false
)

var (
	// BufferSize is the (default) size of buffers. Some methods create buffered
	// channels, this parameter controls how big such buffers might be.
	// Usually such buffers store no big data (ints, bools etc.).
	BufferSize = 1000
)

var (
	// ErrInvalidDimensions is returned if a dimension string can't be parsed or
	// describes an empty area.
	ErrInvalidDimensions = errors.New("Invalid dimensions")
)

// NoGrid is the grid cell argument that disables the helper grid.
const NoGrid = "none"

// ProgressFunc is a function that is used to inform a caller about the progress
// of a called function.
// For example if we quantize a large mosaic we might wish to know how far the
// call is and give feedback to the user.
// The called method calls the process function after each iteration.
type ProgressFunc func(num int)

// ProgressIgnore is a ProgressFunc that does nothing.
func ProgressIgnore(num int) {}

func progressPercent(num, max int) float64 {
	percent := (float64(num) / float64(max)) * 100.0
	if percent > 100.0 {
		percent = 100.0
	}
	return percent
}

func skipProgress(num, max, step int) bool {
	if step == 0 || max == 0 {
		return true
	}
	return !(step < 0 || num%step == 0)
}

// LoggerProgressFunc is a parameterized ProgressFunc that logs to log.
// The output describes the progress (how many of how many objects processed).
// Log messages may have an addition prefix. max is the total number of elements
// to process and step describes how often to print to the log (for example
// step = 100 every 100 items).
func LoggerProgressFunc(prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if skipProgress(num, max, step) {
			return
		}
		percent := progressPercent(num, max)
		if prefix == "" {
			log.Printf("Progress: %d of %d (%.1f%%)", num, max, percent)
		} else {
			log.Printf("%s: %d of %d (%.1f%%)", prefix, num, max, percent)
		}
	}
}

// StdProgressFunc is a parameterized ProgressFunc that logs to the
// specified writer.
// See LoggerProgressFunc for the meaning of prefix, max and step.
func StdProgressFunc(w io.Writer, prefix string, max, step int) ProgressFunc {
	return func(num int) {
		if skipProgress(num, max, step) {
			return
		}
		percent := progressPercent(num, max)
		if prefix == "" {
			fmt.Fprintf(w, "Progress: %d of %d (%.1f%%)\n", num, max, percent)
		} else {
			fmt.Fprintf(w, "%s: %d of %d (%.1f%%)\n", prefix, num, max, percent)
		}
	}
}

// ParseDimensions parses a string of the form "AxB" where A and B are positive
// integers. All errors wrap ErrInvalidDimensions.
func ParseDimensions(s string) (int, int, error) {
	split := strings.Split(s, "x")
	if len(split) != 2 {
		return -1, -1, fmt.Errorf("%w: %s, expect \"AxB\"", ErrInvalidDimensions, s)
	}
	first, second := strings.TrimSpace(split[0]), strings.TrimSpace(split[1])
	firstInt, firstErr := strconv.Atoi(first)
	if firstErr != nil {
		return -1, -1, fmt.Errorf("%w: %s: %v", ErrInvalidDimensions, s, firstErr)
	}
	secondInt, secondErr := strconv.Atoi(second)
	if secondErr != nil {
		return -1, -1, fmt.Errorf("%w: %s: %v", ErrInvalidDimensions, s, secondErr)
	}
	if firstInt <= 0 || secondInt <= 0 {
		return -1, -1, fmt.Errorf("%w: dimensions must be positive, got %d and %d",
			ErrInvalidDimensions, firstInt, secondInt)
	}
	return firstInt, secondInt, nil
}

// ParseGridCell parses the size of a helper grid cell. It is either of the
// form "AxB" as in ParseDimensions or NoGrid, in which case 0, 0 is returned.
func ParseGridCell(s string) (int, int, error) {
	if strings.EqualFold(strings.TrimSpace(s), NoGrid) {
		return 0, 0, nil
	}
	return ParseDimensions(s)
}

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
	"sort"
)

// UsageEntry is the number of tiles of one palette entry.
type UsageEntry struct {
	// Index is the position of the entry in the palette.
	Index int
	Count int
}

// UsageStats counts how many tiles of each palette entry are used in a
// mosaic. Entries are identified by their palette index, the stats remember in
// which order the entries were discovered.
//
// Stats only grow, there is no way to remove an entry.
// It is not safe to concurrently modify stats, instead each go routine should
// use its own stats and combine them with Merge.
type UsageStats struct {
	counts map[int]int
	order  []int
	total  int
}

// NewUsageStats returns empty stats.
func NewUsageStats() *UsageStats {
	return &UsageStats{
		counts: make(map[int]int),
		order:  make([]int, 0),
	}
}

// Increment adds one tile for the palette entry with the given index.
func (s *UsageStats) Increment(index int) {
	s.Add(index, 1)
}

// Add adds n tiles for the palette entry with the given index.
// n must be ≥ 1, other values are ignored.
func (s *UsageStats) Add(index, n int) {
	if n <= 0 {
		return
	}
	if _, has := s.counts[index]; !has {
		s.order = append(s.order, index)
	}
	s.counts[index] += n
	s.total += n
}

// Count returns the number of tiles for the given palette index (0 if the
// entry was never used).
func (s *UsageStats) Count(index int) int {
	return s.counts[index]
}

// Len returns the number of distinct palette entries used.
func (s *UsageStats) Len() int {
	return len(s.order)
}

// Total returns the number of tiles counted.
func (s *UsageStats) Total() int {
	return s.total
}

// Merge adds all counts from other. Entries new to s are appended in the
// discovery order of other.
func (s *UsageStats) Merge(other *UsageStats) {
	for _, index := range other.order {
		s.Add(index, other.counts[index])
	}
}

// Entries returns the counts in discovery order.
func (s *UsageStats) Entries() []UsageEntry {
	res := make([]UsageEntry, len(s.order))
	for i, index := range s.order {
		res[i] = UsageEntry{Index: index, Count: s.counts[index]}
	}
	return res
}

// Sorted returns the counts sorted by count in descending order. Entries with
// the same count remain in discovery order.
func (s *UsageStats) Sorted() []UsageEntry {
	res := s.Entries()
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Count > res[j].Count
	})
	return res
}

// ByEntry returns the counts keyed by palette entry. Equal entries at
// different positions in the palette are added up.
func (s *UsageStats) ByEntry(p Palette) map[PaletteEntry]int {
	res := make(map[PaletteEntry]int, len(s.order))
	for _, index := range s.order {
		res[p[index]] += s.counts[index]
	}
	return res
}

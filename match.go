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
	"sync"
)

var (
	// MatchCacheSize is the number of colors a Matcher remembers. It must be a
	// number ≥ 1.
	MatchCacheSize = 4096
)

// Nearest returns the index of the palette entry closest to c.
// If multiple entries have the same minimal distance the first one (in palette
// order) is returned. If metric is nil EuclideanRGB is used.
//
// An empty palette returns ErrEmptyPalette.
func Nearest(c RGB, p Palette, metric ColorMetric) (int, error) {
	if len(p) == 0 {
		return -1, ErrEmptyPalette
	}
	if metric == nil {
		metric = EuclideanRGB
	}
	best := 0
	bestDist := metric(c, p[0].Color)
	for i := 1; i < len(p); i++ {
		// strictly smaller: ties keep the earlier entry
		if dist := metric(c, p[i].Color); dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best, nil
}

// Match returns the palette entry closest to c with respect to the euclidean
// distance in rgb space, see Nearest.
func Match(c RGB, p Palette) (PaletteEntry, error) {
	i, err := Nearest(c, p, EuclideanRGB)
	if err != nil {
		return PaletteEntry{}, err
	}
	return p[i], nil
}

// colorCache caches the nearest palette index for colors.
// Once full the oldest entry is removed.
//
// Caches are safe for concurrent use.
type colorCache struct {
	m           *sync.Mutex
	size        int
	content     map[RGB]int
	insertOrder []RGB
}

func newColorCache(size int) *colorCache {
	if size <= 0 {
		size = 1
	}
	var m sync.Mutex
	return &colorCache{
		m:           &m,
		size:        size,
		content:     make(map[RGB]int, size),
		insertOrder: make([]RGB, 0, size),
	}
}

func (cache *colorCache) put(c RGB, index int) {
	cache.m.Lock()
	defer cache.m.Unlock()
	if _, has := cache.content[c]; has {
		return
	}
	if len(cache.insertOrder) >= cache.size {
		// cache full, remove first element from cache
		fst := cache.insertOrder[0]
		cache.insertOrder = cache.insertOrder[1:]
		delete(cache.content, fst)
	}
	cache.insertOrder = append(cache.insertOrder, c)
	cache.content[c] = index
}

func (cache *colorCache) get(c RGB) (int, bool) {
	cache.m.Lock()
	defer cache.m.Unlock()
	index, has := cache.content[c]
	return index, has
}

// Matcher finds the nearest palette entry for colors. It remembers the results
// of previous lookups.
//
// A Matcher is safe for concurrent use.
type Matcher struct {
	Palette Palette
	Metric  ColorMetric
	cache   *colorCache
}

// NewMatcher returns a new matcher. If metric is nil EuclideanRGB is used.
// It returns ErrEmptyPalette if there are no colors to match against.
func NewMatcher(p Palette, metric ColorMetric) (*Matcher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if metric == nil {
		metric = EuclideanRGB
	}
	return &Matcher{
		Palette: p,
		Metric:  metric,
		cache:   newColorCache(MatchCacheSize),
	}, nil
}

// Nearest returns the index of the nearest palette entry, see Nearest.
func (m *Matcher) Nearest(c RGB) (int, error) {
	if m.cache == nil {
		return Nearest(c, m.Palette, m.Metric)
	}
	if index, has := m.cache.get(c); has {
		matchCacheHits.Inc()
		return index, nil
	}
	matchCacheMisses.Inc()
	index, err := Nearest(c, m.Palette, m.Metric)
	if err != nil {
		return -1, err
	}
	m.cache.put(c, index)
	return index, nil
}

// Match returns the nearest palette entry.
func (m *Matcher) Match(c RGB) (PaletteEntry, error) {
	index, err := m.Nearest(c)
	if err != nil {
		return PaletteEntry{}, err
	}
	return m.Palette[index], nil
}

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

package web

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/merschformann/brickmos"
)

// PreviewID identifies a preview.
type PreviewID uuid.UUID

// ParsePreviewID parses the string representation of an id.
func ParsePreviewID(s string) (PreviewID, error) {
	id, err := uuid.Parse(s)
	return PreviewID(id), err
}

func (id PreviewID) String() string {
	return uuid.UUID(id).String()
}

// Preview is the result of one mosaic run that can be shown in the browser.
type Preview struct {
	Created    time.Time
	lastAccess time.Time
	Result     *brickmos.Result
}

// NewPreview returns a new preview for the result.
func NewPreview(res *brickmos.Result) *Preview {
	now := time.Now().UTC()
	return &Preview{
		Created:    now,
		lastAccess: now,
		Result:     res,
	}
}

// Expired returns true if the preview was not accessed for maxAge.
func (p *Preview) Expired(now time.Time, maxAge time.Duration) bool {
	age := now.Sub(p.lastAccess)
	return age >= maxAge
}

var (
	// ErrPreviewNotFound is returned if there is no preview with a given id.
	ErrPreviewNotFound = errors.New("Preview not found")
)

// PreviewStorage stores previews, implementations must be safe for concurrent
// use.
type PreviewStorage interface {
	Get(id PreviewID) (*Preview, error)
	Set(id PreviewID, preview *Preview) error
	Delete(id PreviewID) error
	Filter(maxAge time.Duration) error
	IDs() []PreviewID
}

// MemStorage is a PreviewStorage that keeps all previews in memory.
type MemStorage struct {
	mutex      *sync.RWMutex
	previewMap map[PreviewID]*Preview
}

// NewMemStorage returns an empty storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		mutex:      new(sync.RWMutex),
		previewMap: make(map[PreviewID]*Preview),
	}
}

// Get returns the preview with the given id and marks it as accessed.
func (s *MemStorage) Get(id PreviewID) (*Preview, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	preview, has := s.previewMap[id]
	if !has {
		return nil, ErrPreviewNotFound
	}
	preview.lastAccess = time.Now().UTC()
	return preview, nil
}

// Set stores the preview under the given id, replacing any previous preview.
func (s *MemStorage) Set(id PreviewID, preview *Preview) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.previewMap[id] = preview
	return nil
}

// Delete removes the preview with the given id, unknown ids are ignored.
func (s *MemStorage) Delete(id PreviewID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.previewMap, id)
	return nil
}

// Filter removes all previews that were not accessed for maxAge.
func (s *MemStorage) Filter(maxAge time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := time.Now().UTC()
	for id, preview := range s.previewMap {
		if preview.Expired(now, maxAge) {
			delete(s.previewMap, id)
		}
	}
	return nil
}

// IDs returns the ids of all previews, oldest first.
func (s *MemStorage) IDs() []PreviewID {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	res := make([]PreviewID, 0, len(s.previewMap))
	for id := range s.previewMap {
		res = append(res, id)
	}
	sort.Slice(res, func(i, j int) bool {
		return s.previewMap[res[i]].Created.Before(s.previewMap[res[j]].Created)
	})
	return res
}

// AddResult stores a preview for the result, the id of the preview is the id
// of the run.
func AddResult(storage PreviewStorage, res *brickmos.Result) (PreviewID, error) {
	id := PreviewID(res.ID)
	return id, storage.Set(id, NewPreview(res))
}

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
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/merschformann/brickmos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(t *testing.T) *brickmos.Result {
	t.Helper()
	palette := brickmos.Palette{
		brickmos.NewPaletteEntry(brickmos.NewRGB(255, 0, 0), "Red", "5", "3024"),
		brickmos.NewPaletteEntry(brickmos.NewRGB(0, 0, 255), "Blue", "7", "3024"),
	}
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	src.SetRGBA(0, 0, color.RGBA{250, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 250, 255})
	src.SetRGBA(2, 0, color.RGBA{0, 10, 240, 255})
	matcher, err := brickmos.NewMatcher(palette, nil)
	require.NoError(t, err)
	grid, stats, err := brickmos.Quantize(src, matcher, 1, nil)
	require.NoError(t, err)
	inv, err := brickmos.ExportInventory(stats, palette, 0)
	require.NoError(t, err)
	return &brickmos.Result{
		ID:        uuid.New(),
		Palette:   palette,
		Grid:      grid,
		Stats:     stats,
		Inventory: inv,
		Input:     src,
		Pixelated: src,
		Output:    grid.Image(),
	}
}

func newTestServer(t *testing.T) (*httptest.Server, PreviewID) {
	t.Helper()
	storage := NewMemStorage()
	id, err := AddResult(storage, testResult(t))
	require.NoError(t, err)
	mux := http.NewServeMux()
	DefaultHandlers(NewContext(storage), mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, id
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body strings.Builder
	_, err = io.Copy(&body, resp.Body)
	require.NoError(t, err)
	return resp, body.String()
}

func TestStatsHandler(t *testing.T) {
	server, id := newTestServer(t)
	resp, body := get(t, server.URL+StatsPrefix+id.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var stats StatsJSON
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, id.String(), stats.ID)
	assert.Equal(t, 3, stats.Width)
	assert.Equal(t, 1, stats.Height)
	assert.Equal(t, 3, stats.Tiles)
	assert.Equal(t, []ColorJSON{
		{Name: "Blue", Hex: "#0000ff", ColorID: "7", PartID: "3024", Count: 2},
		{Name: "Red", Hex: "#ff0000", ColorID: "5", PartID: "3024", Count: 1},
	}, stats.Colors)
}

func TestStatsHandlerErrors(t *testing.T) {
	server, _ := newTestServer(t)
	resp, _ := get(t, server.URL+StatsPrefix+"not-an-id")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = get(t, server.URL+StatsPrefix+uuid.New().String())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryHandler(t *testing.T) {
	server, id := newTestServer(t)
	resp, body := get(t, server.URL+InventoryPrefix+id.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	inv, err := brickmos.ParseInventory(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 3, inv.TotalQuantity())
}

func TestIndexAndPreviewHandler(t *testing.T) {
	server, id := newTestServer(t)
	resp, body := get(t, server.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, PreviewPrefix+id.String())

	resp, _ = get(t, server.URL+"/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get(t, server.URL+PreviewPrefix+id.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Mosaic 3x1")
	assert.Contains(t, body, "data:image/png;base64,")
	assert.Contains(t, body, "Blue")
}

func TestMetricsHandler(t *testing.T) {
	server, _ := newTestServer(t)
	resp, body := get(t, server.URL+MetricsPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "brickmos_")
}

func TestMemStorage(t *testing.T) {
	storage := NewMemStorage()
	first, err := AddResult(storage, testResult(t))
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := AddResult(storage, testResult(t))
	require.NoError(t, err)
	assert.Equal(t, []PreviewID{first, second}, storage.IDs())

	_, err = storage.Get(PreviewID(uuid.New()))
	assert.ErrorIs(t, err, ErrPreviewNotFound)

	require.NoError(t, storage.Delete(first))
	assert.Equal(t, []PreviewID{second}, storage.IDs())

	require.NoError(t, storage.Filter(time.Hour))
	assert.Len(t, storage.IDs(), 1)
	require.NoError(t, storage.Filter(0))
	assert.Empty(t, storage.IDs())
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	encoded, err := EncodePNG(img)
	require.NoError(t, err)
	data, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestRunFilter(t *testing.T) {
	storage := NewMemStorage()
	_, err := AddResult(storage, testResult(t))
	require.NoError(t, err)
	context := NewContext(storage)

	keep := context.RunFilter(time.Hour, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	close(keep)
	assert.Len(t, storage.IDs(), 1)

	stop := context.RunFilter(20*time.Millisecond, 5*time.Millisecond)
	defer close(stop)
	assert.Eventually(t, func() bool {
		return len(storage.IDs()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestMemStorageSet(t *testing.T) {
	storage := NewMemStorage()
	res := testResult(t)
	id := PreviewID(res.ID)
	first := NewPreview(res)
	require.NoError(t, storage.Set(id, first))
	second := NewPreview(res)
	require.NoError(t, storage.Set(id, second))
	got, err := storage.Get(id)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.NoError(t, storage.Delete(PreviewID(uuid.New())))
}

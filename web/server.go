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
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/merschformann/brickmos"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyHandled is returned by a HandlerFunc that already wrote an error
	// response.
	ErrAlreadyHandled = errors.New("Error was already handled")
)

// Routes of the preview server, ids are appended to the prefixes.
const (
	PreviewPrefix   = "/preview/"
	StatsPrefix     = "/stats/"
	InventoryPrefix = "/bricklink/"
	MetricsPath     = "/metrics"
)

// Context is shared by all handlers.
type Context struct {
	Storage    PreviewStorage
	JPGQuality int
}

// NewContext returns a new context given the storage.
func NewContext(storage PreviewStorage) *Context {
	return &Context{
		Storage:    storage,
		JPGQuality: brickmos.DefaultJPGQuality,
	}
}

// RunFilter periodically removes previews not accessed for maxAge. Close the
// returned channel to stop filtering.
func (context *Context) RunFilter(maxAge, interval time.Duration) chan<- struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := context.Storage.Filter(maxAge); err != nil {
					log.WithError(err).Warn("Can't filter previews")
				}
			}
		}
	}()
	return done
}

// HandlerFunc handles a request and returns the data that should be encoded
// as json.
type HandlerFunc func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error)

// ToHTTPFunc converts a HandlerFunc to an http.HandlerFunc. The returned
// data is written as json, errors result in an internal server error (unless
// the error is ErrAlreadyHandled).
func ToHTTPFunc(context *Context, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonData, err := handler(context, w, r)
		if err != nil {
			if err != ErrAlreadyHandled {
				log.WithError(err).Error("Error in request")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
		jData, jErr := json.Marshal(jsonData)
		if jErr != nil {
			log.WithError(jErr).Error("Internal error: Can't marshal json")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jData)
	}
}

// previewFromPath looks up the preview whose id follows prefix in the request
// path. If the preview can't be found an error response is written and
// ErrAlreadyHandled is returned.
func previewFromPath(context *Context, prefix string, w http.ResponseWriter, r *http.Request) (*Preview, error) {
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	id, parseErr := ParsePreviewID(idStr)
	if parseErr != nil {
		http.Error(w, "Invalid preview id: "+idStr, http.StatusBadRequest)
		return nil, ErrAlreadyHandled
	}
	preview, getErr := context.Storage.Get(id)
	if getErr != nil {
		http.Error(w, getErr.Error(), http.StatusNotFound)
		return nil, ErrAlreadyHandled
	}
	return preview, nil
}

// ColorJSON describes the usage of one color.
type ColorJSON struct {
	Name    string `json:"name"`
	Hex     string `json:"hex"`
	ColorID string `json:"colorId"`
	PartID  string `json:"partId"`
	Count   int    `json:"count"`
}

// StatsJSON is the response of the stats handler.
type StatsJSON struct {
	ID     string      `json:"id"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Tiles  int         `json:"tiles"`
	Colors []ColorJSON `json:"colors"`
}

func statsJSON(id PreviewID, res *brickmos.Result) StatsJSON {
	sorted := res.Stats.Sorted()
	colors := make([]ColorJSON, len(sorted))
	for i, usage := range sorted {
		entry := res.Palette[usage.Index]
		colors[i] = ColorJSON{
			Name:    entry.Name,
			Hex:     entry.Hex(),
			ColorID: entry.ColorID,
			PartID:  entry.PartID,
			Count:   usage.Count,
		}
	}
	return StatsJSON{
		ID:     id.String(),
		Width:  res.Grid.Width,
		Height: res.Grid.Height,
		Tiles:  res.Stats.Total(),
		Colors: colors,
	}
}

// StatsHandler returns the color statistics of a preview as json.
func StatsHandler(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
	preview, err := previewFromPath(context, StatsPrefix, w, r)
	if err != nil {
		return nil, err
	}
	return statsJSON(PreviewID(preview.Result.ID), preview.Result), nil
}

// InventoryHandler writes the BrickLink inventory of a preview.
func InventoryHandler(context *Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		preview, err := previewFromPath(context, InventoryPrefix, w, r)
		if err != nil {
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		if writeErr := preview.Result.Inventory.WriteXML(w); writeErr != nil {
			log.WithError(writeErr).Error("Can't write inventory")
		}
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<html>
<head><title>brickmos</title></head>
<body>
<h1>Mosaics</h1>
<ul>
{{range .}}<li><a href="/preview/{{.}}">{{.}}</a></li>
{{end}}</ul>
</body>
</html>
`))

var previewTemplate = template.Must(template.New("preview").Parse(`<html>
<head><title>brickmos {{.Stats.ID}}</title></head>
<body>
<h1>Mosaic {{.Stats.Width}}x{{.Stats.Height}}</h1>
<p>{{len .Stats.Colors}} colors, {{.Stats.Tiles}} tiles.
<a href="/bricklink/{{.Stats.ID}}">BrickLink inventory</a></p>
<h2>Input</h2>
<img src="data:image/jpeg;base64,{{.Input}}">
<h2>Pixelated</h2>
<img src="data:image/jpeg;base64,{{.Pixelated}}">
<h2>Output</h2>
<img src="data:image/png;base64,{{.Output}}">
<h2>Colors</h2>
<table>
{{range .Stats.Colors}}<tr><td style="background-color: {{.Hex}}; width: 2em"></td><td>{{.Name}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type previewPage struct {
	Stats                    StatsJSON
	Input, Pixelated, Output template.URL
}

// IndexHandler lists all previews.
func IndexHandler(context *Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err := indexTemplate.Execute(w, context.Storage.IDs()); err != nil {
			log.WithError(err).Error("Can't render index")
		}
	}
}

// PreviewHandler shows the images and the color statistics of a preview.
func PreviewHandler(context *Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		preview, err := previewFromPath(context, PreviewPrefix, w, r)
		if err != nil {
			return
		}
		res := preview.Result
		page := previewPage{Stats: statsJSON(PreviewID(res.ID), res)}
		var input, pixelated, output string
		var encErr error
		if input, encErr = EncodeJPEG(res.Input, context.JPGQuality); encErr == nil {
			if pixelated, encErr = EncodeJPEG(res.Pixelated, context.JPGQuality); encErr == nil {
				output, encErr = EncodePNG(res.Output)
			}
		}
		if encErr != nil {
			log.WithError(encErr).Error("Can't encode preview images")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		page.Input = template.URL(input)
		page.Pixelated = template.URL(pixelated)
		page.Output = template.URL(output)
		if err := previewTemplate.Execute(w, page); err != nil {
			log.WithError(err).Error("Can't render preview")
		}
	}
}

// DefaultHandlers registers all handlers on mux. If mux is nil
// http.DefaultServeMux is used.
func DefaultHandlers(context *Context, mux *http.ServeMux) {
	if mux == nil {
		mux = http.DefaultServeMux
	}
	mux.HandleFunc("/", IndexHandler(context))
	mux.HandleFunc(PreviewPrefix, PreviewHandler(context))
	mux.HandleFunc(StatsPrefix, ToHTTPFunc(context, StatsHandler))
	mux.HandleFunc(InventoryPrefix, InventoryHandler(context))
	mux.Handle(MetricsPath, promhttp.Handler())
}

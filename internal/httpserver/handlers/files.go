package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// ListFiles lists the uploaded files.
func ListFiles(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := d.Uploads.List()
		if err != nil {
			d.Logger.Error("error listing files", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to list files: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, files)
	}
}

// ServeFile serves an uploaded file by name.
func ServeFile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := d.Uploads.Path(chi.URLParam(r, "filename"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeFile(w, r, p)
	}
}

type testResponse struct {
	Message       string `json:"message"`
	DataDirectory string `json:"dataDirectory"`
	Timestamp     string `json:"timestamp"`
}

// Test is the liveness probe the portal calls.
func Test(d deps.Deps) http.HandlerFunc {
	dir := d.Uploads.Dir()
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, testResponse{
			Message:       "Server is running",
			DataDirectory: dir,
			Timestamp:     d.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
}

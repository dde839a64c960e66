package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/clippings/internal/browser"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
)

// Stats serves the dashboard counters.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, browser.ComputeStats(d.Store.All(), len(d.Categories), d.Now()))
	}
}

// Categories serves the category enumeration.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=300")
		writeJSON(w, http.StatusOK, d.Categories)
	}
}

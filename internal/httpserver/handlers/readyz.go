package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Records int    `json:"records"`
	Source  string `json:"source,omitempty"`
}

// Readyz reports ready once the index has been loaded at least once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := d.Store.Index()
		ready := !idx.GetLastReload().IsZero()

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:   ready,
			Records: idx.Count(),
			Source:  idx.Source(),
		})
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status        string    `json:"status"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Records       int       `json:"records"`
	Mirror        bool      `json:"mirror"`
	Build         buildInfo `json:"build"`
}

// Healthz is a liveness probe. It never touches the disk or redis.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(d.StartTime).Seconds(),
			Records:       d.Store.Index().Count(),
			Mirror:        d.Store.MirrorEnabled(),
			Build:         build,
		})
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Count      *int   `json:"count,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Source     string `json:"source,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx := d.Store.Index()
		count := idx.Count()
		lastReload := idx.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"records": {
				OK:         !lastReload.IsZero(),
				Count:      &count,
				LastReload: lastReloadStr,
				Source:     idx.Source(),
			},
			"redis":   checkRedis(r.Context(), d),
			"uploads": checkUploads(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if !components["records"].OK || !components["uploads"].OK {
		return "critical"
	}
	// Redis is optional: only a configured but unreachable mirror degrades.
	if redis := components["redis"]; !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}
	return "optimal"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "no-mirror-no-query-cache",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "down",
			Impact: "no-mirror-no-query-cache",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: "ok"}
}

func checkUploads(d deps.Deps) componentStatus {
	files, err := d.Uploads.List()
	if err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	n := len(files)
	return componentStatus{OK: true, Count: &n}
}

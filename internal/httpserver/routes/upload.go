package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/mw"
)

func init() { Register(registerUpload) }

func registerUpload(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.UploadBurst,
		RefillPerIPPerMin: d.UploadPerMinute,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Post("/api/upload", handlers.Upload(d))
}

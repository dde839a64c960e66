package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/handlers"
)

func init() { Register(registerFiles) }

func registerFiles(r chi.Router, d deps.Deps) {
	r.Get("/api/files", handlers.ListFiles(d))
	r.Get("/data/{filename}", handlers.ServeFile(d))
}

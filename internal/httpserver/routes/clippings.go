package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/handlers"
)

func init() { Register(registerClippings) }

func registerClippings(r chi.Router, d deps.Deps) {
	r.Get("/api/clippings", handlers.GetClippings(d))
	r.Put("/api/clippings", handlers.PutClippings(d))
}

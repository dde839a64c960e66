package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/handlers"
)

func init() { Register(registerTest) }

func registerTest(r chi.Router, d deps.Deps) {
	r.Get("/api/test", handlers.Test(d))
}

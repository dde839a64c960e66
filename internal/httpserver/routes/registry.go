package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type route struct {
	reg Registrar
	mws []Middleware
}

var routes []route

// Register adds a route group. Files in this package call it from init so
// that adding an endpoint is a single new file.
func Register(reg Registrar, mws ...Middleware) {
	routes = append(routes, route{reg: reg, mws: mws})
}

// RegisterAll mounts every group on r. Groups with middlewares get their own
// inline router so the middlewares stay scoped to that group.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, rt := range routes {
		target := r
		if len(rt.mws) > 0 {
			target = r.With(rt.mws...)
		}
		rt.reg(target, d)
	}
}

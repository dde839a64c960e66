package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// registerOps mounts the probes and the operator endpoints. /healthz stays
// open for container runtimes; the rest is limited to AllowedCIDRS, and the
// endpoints that expose internals or mutate state also check the Host.
func registerOps(r chi.Router, d deps.Deps) {
	cidrs := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
	hosts := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.Get("/healthz", handlers.Healthz(d))
	r.With(cidrs).Get("/readyz", handlers.Readyz(d))

	r.Group(func(r chi.Router) {
		r.Use(cidrs, hosts)
		r.Get("/infra", handlers.Infra(d))
		r.Post("/reload", handlers.Reload(d))
	})
}

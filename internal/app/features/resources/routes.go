// internal/app/features/resources/routes.go
package resources

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public directory routes. Nothing here requires a
// signed-in visitor.
//
// Example from bootstrap:
//
//	h := resources.NewHandler(deps.Catalog, deps.Rules, deps.Dedupe, pm, m, errLog, logger)
//	r.Mount("/", resources.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// DIRECTORY (full page; HTMX requests get the results snippet)
	r.Get("/", h.ServeDirectory)

	// VIEW
	r.Get("/recursos/{id}", h.ServeView)

	// JSON
	r.Group(func(r chi.Router) {
		if h.APILimit != nil {
			r.Use(h.APILimit.Middleware)
		}
		r.Get("/api/recursos", h.ServeAPI)
	})

	return r
}

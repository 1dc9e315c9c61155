// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/recursosayuda/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderNotFound shows a 404 page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderStatus(w, r, http.StatusNotFound, "No encontrado", msg, backURL)
}

// RenderBadRequest shows a 400 page with a message.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderStatus(w, r, http.StatusBadRequest, "Solicitud no válida", msg, backURL)
}

// RenderServerError shows a 500 page with a message.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	renderStatus(w, r, http.StatusInternalServerError, "Error", msg, backURL)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	base := viewdata.NewBaseVM(r, title, "/")
	if backURL != "" {
		base.BackURL = backURL
	}

	// HTMX swaps only 2xx responses by default, so fragments get plain text.
	if r.Header.Get("HX-Request") == "true" {
		http.Error(w, msg, status)
		return
	}

	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  base,
		Status:  status,
		Message: msg,
	})
}

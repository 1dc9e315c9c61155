// internal/app/features/resources/view.go
package resources

import (
	"net/http"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView renders one resource by its synthetic identifier.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, ok := h.Catalog.ByID(id)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "resource not found", "Recurso no encontrado.", "/")
		return
	}

	data := viewData{
		BaseVM: viewdata.NewBaseVM(r, res.Name, "/"),
		Card:   buildCard(finder.Result{Resource: res, Priority: finder.PriorityRest}, h.Rules),
	}
	templates.Render(w, r, "recursos_view", data)
}

// internal/app/features/resources/directory.go
package resources

import (
	"net/http"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeDirectory renders the directory page: the profile radio list, the
// province select, the locality box and the ranked result cards.
//
// HTMX requests (the form re-submitting on change) receive only the
// results snippet.
func (h *Handler) ServeDirectory(w http.ResponseWriter, r *http.Request) {
	if err := checkParams(r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "directory: bad selection", err, badParamMessage, "/")
		return
	}
	q, sel := h.selection(r, true)
	results := finder.Search(h.Catalog.Rows(), q, h.Rules, h.Dedupe)

	data := h.directoryData(r, q, results)
	h.remember(w, r, sel)

	if r.Header.Get("HX-Request") == "true" {
		h.Metrics.RecordSearch(q.Profile.ID, metrics.SurfaceSnippet, len(results))
		templates.RenderSnippet(w, "recursos_results", data)
		return
	}

	h.Metrics.RecordSearch(q.Profile.ID, metrics.SurfacePage, len(results))
	templates.Render(w, r, "recursos_directory", data)
}

func (h *Handler) directoryData(r *http.Request, q finder.Query, results []finder.Result) directoryData {
	data := directoryData{
		BaseVM:   viewdata.NewBaseVM(r, "Directorio de recursos", "/"),
		Profile:  q.Profile.ID,
		Province: q.Province,
		Locality: q.Locality,
		Count:    len(results),
		Cards:    buildCards(results, h.Rules),
	}

	for _, p := range h.Rules.Profiles {
		data.Profiles = append(data.Profiles, profileOption{
			ID:       p.ID,
			Label:    p.Display(),
			Selected: p.ID == q.Profile.ID,
		})
	}

	for _, p := range h.provinces() {
		data.Provinces = append(data.Provinces, provinceOption{
			Value:    p,
			Selected: p == q.Province,
		})
	}

	return data
}

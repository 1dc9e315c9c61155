// internal/app/features/resources/api.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
	"go.uber.org/zap"
)

// badParamMessage is shown for selection parameters checkParams rejects.
const badParamMessage = "Los filtros de búsqueda no son válidos."

// ServeAPI handles GET /api/recursos?perfil=&provincia=&localidad=.
//
// Parameters are taken as given: an empty province keeps only the rows
// that apply everywhere. An unknown profile resolves to the first profile;
// the response reports the profile actually used. Parameters that are not
// valid UTF-8 or are too long get a 400.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	if err := checkParams(r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "api: bad selection", err, badParamMessage, "/")
		return
	}

	q, _ := h.selection(r, false)
	results := finder.Search(h.Catalog.Rows(), q, h.Rules, h.Dedupe)
	h.Metrics.RecordSearch(q.Profile.ID, metrics.SurfaceAPI, len(results))

	resp := apiResponse{
		Profile:  q.Profile.ID,
		Province: q.Province,
		Locality: q.Locality,
		Count:    len(results),
		Results:  make([]apiResult, 0, len(results)),
	}
	for _, res := range results {
		resp.Results = append(resp.Results, apiResult{
			ID:          res.ID,
			Name:        res.Name,
			Type:        res.Type,
			Description: res.Description,
			Province:    res.Province,
			Locality:    res.Locality,
			Audience:    res.Audience,
			Phone:       res.Phone,
			Website:     res.Website,
			Email:       res.Email,
			Modality:    res.Modality,
			Scope:       presentation.ScopeOf(res.Resource, h.Rules).Kind,
			Priority:    res.Priority,
		})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "api: encode response", err, "No se pudo preparar la respuesta.", "/")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.Log.Debug("write api response failed", zap.Error(err))
	}
}

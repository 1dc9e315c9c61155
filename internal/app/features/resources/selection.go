// internal/app/features/resources/selection.go
package resources

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
	"github.com/dalemusser/recursosayuda/internal/app/system/prefs"
	"go.uber.org/zap"
)

// Query parameter names, as used by the directory form and the JSON API.
const (
	paramProfile  = "perfil"
	paramProvince = "provincia"
	paramLocality = "localidad"
)

// maxParamRunes bounds each selection parameter. Province and locality
// names in the table are far shorter.
const maxParamRunes = 120

var errBadParam = errors.New("invalid selection parameter")

// checkParams rejects selection parameters that are not valid UTF-8 or are
// longer than maxParamRunes.
func checkParams(r *http.Request) error {
	q := r.URL.Query()
	for _, name := range []string{paramProfile, paramProvince, paramLocality} {
		for _, v := range q[name] {
			if !utf8.ValidString(v) {
				return fmt.Errorf("%w: %s is not valid UTF-8", errBadParam, name)
			}
			if n := utf8.RuneCountInString(v); n > maxParamRunes {
				return fmt.Errorf("%w: %s has %d characters (max %d)", errBadParam, name, n, maxParamRunes)
			}
		}
	}
	return nil
}

// selection resolves the visitor's query from the request.
//
// Explicit parameters win. The page form (withDefaults) then falls back to
// the remembered selection, the first profile and the first province. An
// unknown profile id resolves to the first profile.
func (h *Handler) selection(r *http.Request, withDefaults bool) (finder.Query, prefs.Selection) {
	q := r.URL.Query()
	sel := prefs.Selection{
		Profile:  normalize.QueryParam(q.Get(paramProfile)),
		Province: normalize.QueryParam(q.Get(paramProvince)),
		Locality: normalize.QueryParam(q.Get(paramLocality)),
	}

	if withDefaults {
		_, hasProvince := q[paramProvince]
		_, hasProfile := q[paramProfile]
		_, hasLocality := q[paramLocality]
		if !hasProvince && !hasProfile && !hasLocality {
			sel = h.Prefs.Load(r)
		}
	}

	profile, ok := h.Rules.Profile(sel.Profile)
	if !ok {
		profile = h.Rules.DefaultProfile()
	}
	sel.Profile = profile.ID

	if withDefaults && sel.Province == "" {
		if provinces := h.provinces(); len(provinces) > 0 {
			sel.Province = provinces[0]
		}
	}

	return finder.Query{
		Profile:  profile,
		Province: sel.Province,
		Locality: sel.Locality,
	}, sel
}

// provinces lists the selectable provinces: distinct, sorted, without
// scope sentinels.
func (h *Handler) provinces() []string {
	return h.Catalog.Provinces(h.Rules.IsScopeSentinel)
}

// remember saves sel when the selection cookie is enabled. Failures are
// logged and never block the response.
func (h *Handler) remember(w http.ResponseWriter, r *http.Request, sel prefs.Selection) {
	if err := h.Prefs.Save(w, r, sel); err != nil {
		h.Log.Warn("remember selection failed", zap.String("cookie", h.Prefs.Name()), zap.Error(err))
	}
}

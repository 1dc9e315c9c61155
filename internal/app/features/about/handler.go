// internal/app/features/about/handler.go
package about

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type profileRow struct {
	Display  string
	Keywords string
	Crisis   bool
}

type pageData struct {
	viewdata.BaseVM
	Profiles    []profileRow
	Scopes      []string
	RegionLabel string
	Emergency   string
	Hotlines    string
}

// Handler serves the "Acerca de" page, which explains how the directory
// selects and orders resources under the active rules.
type Handler struct {
	Rules profiles.Rules
	Log   *zap.Logger
}

func NewHandler(rules profiles.Rules, logger *zap.Logger) *Handler {
	return &Handler{Rules: rules, Log: logger}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "about", h.pageData(r))
}

func (h *Handler) pageData(r *http.Request) pageData {
	data := pageData{
		BaseVM:      viewdata.NewBaseVM(r, "Acerca del directorio", "/"),
		Scopes:      h.Rules.Scopes,
		RegionLabel: h.Rules.Region.Label,
		Emergency:   strings.Join(h.Rules.Crisis.Emergency, ", "),
		Hotlines:    strings.Join(h.Rules.Crisis.Hotlines, ", "),
	}
	for _, p := range h.Rules.Profiles {
		data.Profiles = append(data.Profiles, profileRow{
			Display:  p.Display(),
			Keywords: strings.Join(p.Keywords, ", "),
			Crisis:   p.Crisis,
		})
	}
	return data
}

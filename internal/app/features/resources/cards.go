// internal/app/features/resources/cards.go
package resources

import (
	"html/template"

	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/htmlsanitize"
	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
)

// buildCard maps one ranked row to its card view model.
func buildCard(res finder.Result, rules profiles.Rules) card {
	links := presentation.Contacts(res.Resource)
	c := card{
		ID:          res.ID,
		Name:        res.Name,
		Type:        res.Type,
		Description: descriptionHTML(res.Description),
		Scope:       presentation.ScopeOf(res.Resource, rules),
		Audience:    res.Audience,
		Modality:    res.Modality,
		Links:       links,
		Priority:    res.Priority,
		DetailURL:   "/recursos/" + res.ID,
	}
	if len(links) == 0 {
		c.NoContact = presentation.NoContactText
	}
	return c
}

func descriptionHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	return htmlsanitize.PrepareForDisplay(s)
}

func buildCards(results []finder.Result, rules profiles.Rules) []card {
	out := make([]card, 0, len(results))
	for _, res := range results {
		out = append(out, buildCard(res, rules))
	}
	return out
}

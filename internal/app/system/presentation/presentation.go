// Package presentation holds the display rules shared by the web cards and
// the terminal cards: the scope tag of a row and its usable contact links.
package presentation

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/domain/models"
)

// NoContactText is shown when a row has no usable contact channel.
const NoContactText = "Consultar web para más detalles"

// Scope kinds, also used as CSS modifiers (tag-nacional, tag-online, ...).
const (
	KindNational = "nacional"
	KindOnline   = "online"
	KindRegion   = "region"
	KindLocal    = "local"
)

var (
	nationalCI = normalize.Key(models.ScopeNational)
	onlineCI   = normalize.Key(models.ScopeOnline)
	allCI      = normalize.Key(models.ScopeAll)
)

// Contact kinds.
const (
	ContactPhone = "phone"
	ContactWeb   = "web"
	ContactEmail = "email"
)

// Scope is the coloured label shown on each card.
type Scope struct {
	Kind  string // nacional, online, region, local
	Icon  string
	Label string
}

// Class returns the CSS class of the tag.
func (s Scope) Class() string {
	return "tag tag-" + s.Kind
}

// Contact is one usable contact channel.
type Contact struct {
	Kind     string // phone, web, email
	Icon     string
	Label    string
	Href     string
	External bool // open in a new tab
}

// ScopeOf classifies a row for its display tag. The checks run in order:
// national, online, region-wide (province "Todas" or a locality naming the
// region), then local.
func ScopeOf(r models.Resource, rules profiles.Rules) Scope {
	switch {
	case r.ProvinceCI == nationalCI:
		return Scope{Kind: KindNational, Icon: "🇪🇸", Label: "NACIONAL"}
	case r.ProvinceCI == onlineCI:
		return Scope{Kind: KindOnline, Icon: "🌐", Label: "ONLINE / REDES"}
	case r.ProvinceCI == allCI || rules.Region.MatchesLocality(r.LocalityCI):
		label := rules.Region.Label
		if label == "" {
			label = "REGIONAL"
		}
		return Scope{Kind: KindRegion, Icon: "🟢", Label: label}
	default:
		return Scope{Kind: KindLocal, Icon: "📍", Label: r.Province + " - " + r.Locality}
	}
}

// Contacts returns the usable contact channels of r, in display order.
func Contacts(r models.Resource) []Contact {
	var out []Contact

	if utf8.RuneCountInString(r.Phone) > 2 {
		out = append(out, Contact{
			Kind:  ContactPhone,
			Icon:  "📞",
			Label: r.Phone,
			Href:  "tel:" + TelTarget(r.Phone),
		})
	}

	if utf8.RuneCountInString(r.Website) > 4 {
		out = append(out, Contact{
			Kind:     ContactWeb,
			Icon:     "🌐",
			Label:    "Visitar sitio",
			Href:     WebsiteURL(r.Website),
			External: true,
		})
	}

	if strings.Contains(r.Email, "@") {
		out = append(out, Contact{
			Kind:  ContactEmail,
			Icon:  "📧",
			Label: r.Email,
			Href:  "mailto:" + r.Email,
		})
	}

	return out
}

// WebsiteURL prefixes https:// unless the value already starts with http,
// in any letter case.
func WebsiteURL(web string) string {
	if strings.HasPrefix(strings.ToLower(web), "http") {
		return web
	}
	return "https://" + web
}

// TelTarget keeps the characters a dialer accepts. Cells such as
// "958 26 15 16 / 717 003 717" dial the first number.
func TelTarget(phone string) string {
	if i := strings.IndexAny(phone, "/,;"); i >= 0 {
		phone = phone[:i]
	}
	var b strings.Builder
	for _, c := range phone {
		if (c >= '0' && c <= '9') || c == '+' {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return strings.TrimSpace(phone)
	}
	return b.String()
}

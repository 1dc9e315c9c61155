// internal/app/features/resources/types.go
package resources

import (
	"html/template"

	"github.com/dalemusser/recursosayuda/internal/app/system/presentation"
	"github.com/dalemusser/recursosayuda/internal/app/system/viewdata"
)

// card is one resource as rendered in the results list and the detail view.
type card struct {
	ID          string
	Name        string
	Type        string
	Description template.HTML
	Scope       presentation.Scope
	Audience    string
	Modality    string
	Links       []presentation.Contact
	NoContact   string // shown when Links is empty
	Priority    int
	DetailURL   string
}

// profileOption is one entry of the profile radio list.
type profileOption struct {
	ID       string
	Label    string
	Selected bool
}

// provinceOption is one entry of the province select.
type provinceOption struct {
	Value    string
	Selected bool
}

// directoryData provides template data for the directory page and its
// results snippet.
type directoryData struct {
	viewdata.BaseVM

	Profiles  []profileOption
	Provinces []provinceOption

	Profile  string // selected profile id
	Province string
	Locality string

	Count int
	Cards []card
}

// viewData provides template data for the detail view.
type viewData struct {
	viewdata.BaseVM
	Card card
}

// apiResult is one row of the JSON response.
type apiResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Province    string `json:"province"`
	Locality    string `json:"locality,omitempty"`
	Audience    string `json:"audience,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`
	Modality    string `json:"modality,omitempty"`
	Scope       string `json:"scope"`
	Priority    int    `json:"priority"`
}

// apiResponse is the JSON body of GET /api/recursos.
type apiResponse struct {
	Profile  string      `json:"profile"`
	Province string      `json:"province"`
	Locality string      `json:"locality,omitempty"`
	Count    int         `json:"count"`
	Results  []apiResult `json:"results"`
}

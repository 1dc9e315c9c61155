package models

// Resource is one row of the support-resource table.
//
// Rows are immutable after load. The *CI fields hold the folded
// (lowercase, diacritics-stripped) form of their source field and are the
// only values the filter and ranker compare against.
type Resource struct {
	ID string `json:"id"` // stable synthetic identifier (UUIDv5)

	Name   string `json:"name"`
	NameCI string `json:"-"`

	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	Province   string `json:"province"` // normalized: text before the first "/"
	ProvinceCI string `json:"-"`

	Locality   string `json:"locality,omitempty"` // "Localidad / Ámbito"
	LocalityCI string `json:"-"`

	Audience   string `json:"audience,omitempty"` // "Dirigido a", free text
	AudienceCI string `json:"-"`

	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Email    string `json:"email,omitempty"`
	Modality string `json:"modality,omitempty"` // cost / modality; absent in older tables
}

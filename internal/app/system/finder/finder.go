// Package finder filters and ranks resource rows for one directory query.
//
// Everything here is a pure function of (rows, query, rules): the same
// inputs always produce the same rows in the same order.
package finder

import (
	"sort"
	"strings"

	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/domain/models"
)

// Priority buckets, lowest sorts first.
const (
	PriorityEmergency = -10
	PriorityHotline   = -5
	PriorityLocality  = 0
	PriorityProvince  = 1
	PriorityRest      = 2
)

// DedupeKey selects how duplicate resources are collapsed after ranking.
type DedupeKey string

const (
	DedupeByName DedupeKey = "name" // display name; distinct rows sharing a name merge
	DedupeByID   DedupeKey = "id"   // synthetic row identifier
)

// ParseDedupeKey validates a configured dedupe key. "" means DedupeByName.
func ParseDedupeKey(s string) (DedupeKey, bool) {
	switch DedupeKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", DedupeByName:
		return DedupeByName, true
	case DedupeByID:
		return DedupeByID, true
	default:
		return "", false
	}
}

// Query is one user selection.
type Query struct {
	Profile  profiles.Profile
	Province string
	Locality string // optional free text
}

// prepared holds the folded query values.
type prepared struct {
	q          Query
	provinceCI string
	localityCI string
}

func prepare(q Query) prepared {
	return prepared{
		q:          q,
		provinceCI: normalize.Key(q.Province),
		localityCI: normalize.Key(q.Locality),
	}
}

// Result is a surviving row and its priority bucket.
type Result struct {
	models.Resource
	Priority int
}

// Filter returns the rows passing the geographic, profile and locality
// predicates, in their original order.
func Filter(rows []models.Resource, q Query, rules profiles.Rules) []models.Resource {
	p := prepare(q)
	var out []models.Resource
	for _, r := range rows {
		if passes(r, p, rules) {
			out = append(out, r)
		}
	}
	return out
}

func passes(r models.Resource, p prepared, rules profiles.Rules) bool {
	global := rules.IsScopeSentinelCI(r.ProvinceCI)

	// geographic
	if !global && (p.provinceCI == "" || r.ProvinceCI != p.provinceCI) {
		return false
	}

	// profile
	if !p.q.Profile.Matches(r.AudienceCI) {
		return false
	}

	// locality: global rows are never excluded by locality text
	if p.localityCI != "" && !global && !strings.Contains(r.LocalityCI, p.localityCI) {
		return false
	}
	return true
}

// PriorityOf assigns the priority bucket of r. Rules are checked in order
// and the first match wins.
func PriorityOf(r models.Resource, q Query, rules profiles.Rules) int {
	return priority(r, prepare(q), rules)
}

func priority(r models.Resource, p prepared, rules profiles.Rules) int {
	if p.q.Profile.Crisis {
		if rules.Crisis.IsEmergency(r.NameCI) {
			return PriorityEmergency
		}
		if rules.Crisis.IsHotline(r.NameCI) {
			return PriorityHotline
		}
	}
	if p.localityCI != "" && strings.Contains(r.LocalityCI, p.localityCI) {
		return PriorityLocality
	}
	if p.provinceCI != "" && r.ProvinceCI == p.provinceCI {
		return PriorityProvince
	}
	return PriorityRest
}

// Rank assigns priorities and sorts ascending. The sort is stable, so rows
// sharing a bucket keep their input order.
func Rank(rows []models.Resource, q Query, rules profiles.Rules) []Result {
	p := prepare(q)
	out := make([]Result, len(rows))
	for i, r := range rows {
		out[i] = Result{Resource: r, Priority: priority(r, p, rules)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Dedupe keeps the first result for each key, so the best-ranked instance
// of a resource wins.
func Dedupe(results []Result, key DedupeKey) []Result {
	seen := make(map[string]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		k := r.Name
		if key == DedupeByID {
			k = r.ID
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Search runs filter, rank and dedupe.
func Search(rows []models.Resource, q Query, rules profiles.Rules, key DedupeKey) []Result {
	return Dedupe(Rank(Filter(rows, q, rules), q, rules), key)
}

// Package profiles loads the directory rules: the situational profiles and
// their audience keywords, the scope sentinels, and the crisis overrides.
//
// The rules are configuration data. An embedded default is used unless a
// rules file is configured.
package profiles

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
	"github.com/dalemusser/recursosayuda/internal/domain/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRules []byte

var (
	// ErrNoProfiles is returned when a rules file defines no profiles.
	ErrNoProfiles = errors.New("rules define no profiles")

	// ErrInvalidProfile is returned for a profile without id or with a duplicate id.
	ErrInvalidProfile = errors.New("invalid profile")
)

// Profile is one user-selectable situation.
type Profile struct {
	ID       string   `yaml:"id" json:"id"`
	Icon     string   `yaml:"icon" json:"icon,omitempty"`
	Label    string   `yaml:"label" json:"label"`
	Crisis   bool     `yaml:"crisis" json:"crisis,omitempty"` // enables the emergency ranking overrides
	Keywords []string `yaml:"keywords" json:"keywords"`

	keywordsCI []string
}

// Display returns the label with its icon, as shown on the radio list.
func (p Profile) Display() string {
	if p.Icon == "" {
		return p.Label
	}
	return p.Icon + " " + p.Label
}

// Matches reports whether audience (already folded) contains any keyword.
// A profile without keywords matches every row.
func (p Profile) Matches(audienceCI string) bool {
	if len(p.keywordsCI) == 0 {
		return true
	}
	for _, k := range p.keywordsCI {
		if strings.Contains(audienceCI, k) {
			return true
		}
	}
	return false
}

// Region describes the region-wide display tag.
type Region struct {
	Label string `yaml:"label"`
	Match string `yaml:"match"` // locality token marking a region-wide row

	matchCI string
}

// MatchesLocality reports whether a folded locality names the region.
func (r Region) MatchesLocality(localityCI string) bool {
	return r.matchCI != "" && strings.Contains(localityCI, r.matchCI)
}

// Crisis lists the name tokens promoted for crisis profiles.
type Crisis struct {
	Emergency []string `yaml:"emergency"` // short codes such as 112
	Hotlines  []string `yaml:"hotlines"`  // secondary helpline names

	emergencyCI []string
	hotlinesCI  []string
}

// IsEmergency reports whether a folded resource name contains an emergency token.
func (c Crisis) IsEmergency(nameCI string) bool {
	return containsAny(nameCI, c.emergencyCI)
}

// IsHotline reports whether a folded resource name contains a secondary hotline name.
func (c Crisis) IsHotline(nameCI string) bool {
	return containsAny(nameCI, c.hotlinesCI)
}

// Rules is the full rules document.
type Rules struct {
	Scopes   []string  `yaml:"scopes"`
	Region   Region    `yaml:"region"`
	Crisis   Crisis    `yaml:"crisis"`
	Profiles []Profile `yaml:"profiles"`

	scopesCI map[string]struct{}
}

// Default returns the embedded rules.
func Default() Rules {
	r, err := Parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("profiles: embedded rules are invalid: %v", err))
	}
	return r
}

// Load reads rules from path, or returns Default when path is empty.
func Load(path string) (Rules, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a YAML rules document.
func Parse(data []byte) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	if err := r.prepare(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

func (r *Rules) prepare() error {
	if len(r.Profiles) == 0 {
		return ErrNoProfiles
	}
	if len(r.Scopes) == 0 {
		r.Scopes = append([]string(nil), models.DefaultScopeSentinels...)
	}

	r.scopesCI = make(map[string]struct{}, len(r.Scopes))
	for _, s := range r.Scopes {
		r.scopesCI[normalize.Key(s)] = struct{}{}
	}

	r.Region.matchCI = normalize.Key(r.Region.Match)
	r.Crisis.emergencyCI = foldAll(r.Crisis.Emergency)
	r.Crisis.hotlinesCI = foldAll(r.Crisis.Hotlines)

	seen := make(map[string]struct{}, len(r.Profiles))
	for i := range r.Profiles {
		p := &r.Profiles[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return fmt.Errorf("%w: profile %d has no id", ErrInvalidProfile, i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidProfile, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Label == "" {
			p.Label = p.ID
		}
		p.keywordsCI = foldAll(p.Keywords)
	}
	return nil
}

// Profile looks up a profile by id.
func (r Rules) Profile(id string) (Profile, bool) {
	for _, p := range r.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// DefaultProfile is the first configured profile.
func (r Rules) DefaultProfile() Profile {
	if len(r.Profiles) == 0 {
		return Profile{}
	}
	return r.Profiles[0]
}

// IsScopeSentinel reports whether province means "applies everywhere".
func (r Rules) IsScopeSentinel(province string) bool {
	return r.IsScopeSentinelCI(normalize.Key(province))
}

// IsScopeSentinelCI is IsScopeSentinel for an already folded province.
func (r Rules) IsScopeSentinelCI(provinceCI string) bool {
	_, ok := r.scopesCI[provinceCI]
	return ok
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if k := normalize.Key(s); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

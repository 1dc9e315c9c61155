// internal/domain/models/scopes.go
package models

// Canonical scope sentinel province values.
//
// A row whose province is one of these applies regardless of the province
// the user selected. Comparison is always case-insensitive.
const (
	ScopeNational = "Nacional"
	ScopeOnline   = "Online"
	ScopeAll      = "Todas"
)

// DefaultScopeSentinels is used when the rules file does not list any.
var DefaultScopeSentinels = []string{
	ScopeNational,
	ScopeOnline,
	ScopeAll,
}

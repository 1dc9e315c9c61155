package main

import (
	lev "github.com/agnivade/levenshtein"
	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
)

// containsFolded reports whether name is in list, ignoring case and accents.
func containsFolded(list []string, name string) bool {
	key := normalize.Key(name)
	for _, s := range list {
		if normalize.Key(s) == key {
			return true
		}
	}
	return false
}

// suggest returns the entry of list closest to name by edit distance over
// folded text. Candidates further than a third of the input length (at
// least 2 edits) are not offered.
func suggest(name string, list []string) (string, bool) {
	key := normalize.Key(name)
	if key == "" {
		return "", false
	}
	limit := len([]rune(key)) / 3
	if limit < 2 {
		limit = 2
	}

	best, bestDist := "", limit+1
	for _, s := range list {
		d := lev.ComputeDistance(key, normalize.Key(s))
		if d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, best != ""
}

package render

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// nameSource adapts a lowercased name list for fuzzy matching.
type nameSource []string

func (s nameSource) String(i int) string { return s[i] }
func (s nameSource) Len() int            { return len(s) }

// FilterNames fuzzy-matches pattern against names, case-insensitively, and
// returns the matching originals ordered by match score. An empty pattern
// returns names unchanged.
func FilterNames(pattern string, names []string) []string {
	if pattern == "" {
		return names
	}

	lowered := make(nameSource, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	matches := fuzzy.FindFrom(strings.ToLower(pattern), lowered)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, names[m.Index])
	}
	return out
}

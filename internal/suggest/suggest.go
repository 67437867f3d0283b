// Package suggest narrows the known film titles down to autocomplete
// candidates for the guess input.
package suggest

import (
	"sort"
	"strings"
)

// Max is how many candidates are shown under the input.
const Max = 3

// Titles returns up to Max titles containing the query, longest titles
// first. A blank query suggests nothing.
func Titles(all []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []string
	for _, title := range all {
		if strings.Contains(strings.ToLower(title), query) {
			matches = append(matches, title)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i]) > len(matches[j])
	})
	if len(matches) > Max {
		matches = matches[:Max]
	}
	return matches
}

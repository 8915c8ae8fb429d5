// Package cardmatch scores card names against a query string. The CLI
// uses it to suggest close names when a fetch comes back empty, and the
// art scanner uses it to pair loose filenames with cached card names.
package cardmatch

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Result is one scored candidate name.
type Result struct {
	Name  string
	Score int
	Index int
}

// Options configures matching behavior.
type Options struct {
	// MaxResults limits the number of results returned (0 = unlimited)
	MaxResults int
	// MinScore sets minimum score threshold (0-100)
	MinScore int
}

// DefaultOptions returns sensible default matching options.
func DefaultOptions() Options {
	return Options{
		MaxResults: 5,
		MinScore:   45,
	}
}

// Closest scores every candidate name against the query and returns the
// matches sorted by score (highest first). Matching is case-insensitive.
func Closest(query string, names []string, options Options) []Result {
	query = strings.ToLower(query)

	results := make([]Result, 0, len(names))
	for i, name := range names {
		score := score(query, strings.ToLower(name))
		if score >= options.MinScore {
			results = append(results, Result{
				Name:  name,
				Score: score,
				Index: i,
			})
		}
	}

	// Sort by score descending, then by original index ascending
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}

	return results
}

// score rates the similarity of query and target from 0 to 100. Exact
// matches outrank prefixes, prefixes outrank substrings, and everything
// else falls through to edit distance.
func score(query, target string) int {
	if query == target {
		return 100
	}
	if len(query) == 0 || len(target) == 0 {
		return 0
	}

	if strings.HasPrefix(target, query) {
		return 85 + len(query)*15/len(target)
	}

	if strings.Contains(target, query) {
		return 70 + len(query)*20/len(target)
	}

	distance := levenshtein.ComputeDistance(query, target)
	maxLen := max(utf8.RuneCountInString(query), utf8.RuneCountInString(target))

	return 100 - distance*100/maxLen
}

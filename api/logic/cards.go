/* cards.go
 * Contains the logic for resolving user-typed card names against the
 * catalog
 */

package logic

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveCardNames matches user input against the catalog's card names.
// Catalog names are already lowercase; input is lowercased before matching.
// It returns the resolved catalog names and, separately, the inputs that
// matched nothing. An exact match beats fuzzy candidates, otherwise the
// best ranked candidate wins.
func ResolveCardNames(inputs []string, catalogNames []string) ([]string, []string) {
	var resolved []string
	var invalid []string

	for _, input := range inputs {
		lower := strings.ToLower(strings.TrimSpace(input))
		results := fuzzy.RankFind(lower, catalogNames)
		if len(results) == 0 {
			invalid = append(invalid, input)
			continue
		}
		sort.Sort(results)

		match := ""
		for i := range results {
			if results[i].Target == lower {
				match = results[i].Target
			}
		}
		if match == "" {
			match = results[0].Target
		}
		resolved = append(resolved, match)
	}
	return resolved, invalid
}

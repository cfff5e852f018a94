package value

import (
	"sort"

	"golang.org/x/exp/maps"
)

// mapKeysSorted returns the keys of m in sorted order. It backs the one
// place this module imposes an order on a JSON object the caller already
// handed it as a plain, order-losing map[string]any: see SPEC_FULL.md §13.
func mapKeysSorted(m map[string]any) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

// Package resolver implements the uniform entity resolution algorithm
// used everywhere a user-typed identifier must be matched to a record:
// todos, subtasks, notes, dev-log entries, components, relationships,
// and stack items all resolve the same way.
package resolver

import (
	"strconv"
	"strings"

	"taskdeck/pkg/decktypes"
)

// ResolveIndex returns the position of the entity the identifier refers
// to, or -1 when nothing matches. Three tiers, first match wins, no
// fallthrough once a tier yields a candidate:
//
//  1. Exact id match, case-sensitive. Checked first even when the
//     identifier parses as a number, so numeric-looking ids are never
//     confused with positional indices.
//  2. 1-based positional index into the collection's current order.
//     Only positive integers count as indices; an out-of-range positive
//     integer is a definitive miss, while zero or negative numerics are
//     treated as ordinary text and fall through to the label tier.
//  3. Case-insensitive substring match on the label; ties broken by
//     collection order.
func ResolveIndex[T decktypes.Resolvable](collection []T, identifier string) int {
	for i, entity := range collection {
		if entity.ResolveID() == identifier {
			return i
		}
	}

	if n, err := strconv.Atoi(identifier); err == nil && n >= 1 {
		if n <= len(collection) {
			return n - 1
		}
		return -1
	}

	lowered := strings.ToLower(identifier)
	for i, entity := range collection {
		if strings.Contains(strings.ToLower(entity.ResolveLabel()), lowered) {
			return i
		}
	}

	return -1
}

// Resolve returns the matched entity, or the zero value and false when
// the identifier matches nothing.
func Resolve[T decktypes.Resolvable](collection []T, identifier string) (T, bool) {
	if i := ResolveIndex(collection, identifier); i >= 0 {
		return collection[i], true
	}
	var zero T
	return zero, false
}

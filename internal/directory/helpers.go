package directory

import "strings"

// normalizeName canonicalizes an entity name for storage and lookup.
// Names are matched case-insensitively everywhere else in the system.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

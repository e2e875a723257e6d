package group

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Identifier derives the stable group key from its members: the sorted
// student ids joined with "_". Member order at login does not matter.
func Identifier(studentIDs []uuid.UUID) string {
	ids := make([]string, len(studentIDs))
	for i, id := range studentIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

package trello

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/dgmdan/trello-codex-skill/pkg/models"
)

// idPattern matches a full 24-character hex Trello identifier.
var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// IsID reports whether ref looks like a full Trello identifier rather
// than a display name.
func IsID(ref string) bool {
	return idPattern.MatchString(ref)
}

// ResolveList finds the list matching ref within lists. An exact ID
// match wins over name matching; names are compared case-insensitively
// after trimming whitespace. When several lists share a name, the
// first one in board order is chosen so resolution stays deterministic.
func ResolveList(lists []models.List, ref string) (*models.List, error) {
	for i := range lists {
		if lists[i].ID == ref {
			return &lists[i], nil
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(ref))
	for i := range lists {
		if strings.ToLower(strings.TrimSpace(lists[i].Name)) == normalized {
			return &lists[i], nil
		}
	}

	return nil, errors.Wrapf(ErrListNotFound, "list %q", ref)
}

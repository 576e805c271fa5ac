package catalog

import (
	"strings"

	"github.com/shopfeed/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

var (
	truthy = map[string]struct{}{"y": {}, "yes": {}, "t": {}, "true": {}, "on": {}, "1": {}}
	falsy  = map[string]struct{}{"n": {}, "no": {}, "f": {}, "false": {}, "off": {}, "0": {}}
)

// ParseBoolLiteral converts a conventional boolean literal into a bool.
// Matching ignores case and surrounding whitespace.
func ParseBoolLiteral(raw string) (bool, error) {
	v := cases.Fold().String(strings.TrimSpace(raw))
	if _, ok := truthy[v]; ok {
		return true, nil
	}
	if _, ok := falsy[v]; ok {
		return false, nil
	}
	return false, shared.NewDomainError(shared.CodeInvalidBooleanLiteral, "Invalid truth value "+quote(raw))
}

func quote(s string) string {
	return "'" + s + "'"
}

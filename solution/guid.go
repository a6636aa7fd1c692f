package solution

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeGUID returns guid in the canonical "{XXXXXXXX-XXXX-...}" upper-case form.
// Strings that do not parse as a GUID are upper-cased and braced as-is.
func NormalizeGUID(guid string) string {
	trimmed := strings.TrimSpace(guid)
	if trimmed == "" {
		return ""
	}
	bare := strings.TrimSuffix(strings.TrimPrefix(trimmed, "{"), "}")
	if id, err := uuid.Parse(bare); err == nil {
		return "{" + strings.ToUpper(id.String()) + "}"
	}
	return "{" + strings.ToUpper(bare) + "}"
}

package scan

import (
	"strconv"
	"strings"
)

// Booleanize coerces an inline switch value.
// Trimmed integers are true when non-zero ("00" is false, "0x0" is not an integer);
// "false" in any case is false; anything else is true when non-empty.
func Booleanize(s string) bool {
	trimmed := strings.TrimSpace(s)

	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n != 0
	}

	if strings.EqualFold(trimmed, "false") {
		return false
	}

	return trimmed != ""
}

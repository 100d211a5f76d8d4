package family

import "strings"

// NormalizeKey maps any user-entered family code to its canonical stored
// form: uppercase with everything outside A-Z0-9 removed. Every read and
// write of a family key goes through this one function.
func NormalizeKey(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range strings.ToUpper(strings.TrimSpace(code)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package css

import (
	"strconv"
	"strings"
)

// ParseDeclarations parses declaration text like "height: 400px; color: red"
// into a property map. Malformed declarations are skipped.
func ParseDeclarations(s string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		colon := strings.Index(decl, ":")
		if colon < 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(decl[:colon]))
		value := strings.TrimSpace(decl[colon+1:])
		if name == "" || value == "" {
			continue
		}
		props[name] = value
	}
	return props
}

// ParseLength parses a pixel length value (e.g. "100px" or "100").
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

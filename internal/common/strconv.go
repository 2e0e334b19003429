package common

import "strconv"

// ParseBoolDefault parses a query or form flag, falling back to def when blank or malformed.
func ParseBoolDefault(value string, def bool) bool {
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

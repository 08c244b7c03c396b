package utils

import "strings"

// SplitTrim splits raw on sep, trims every element and drops empty ones.
func SplitTrim(raw, sep string) []string {
	var result []string

	for _, s := range strings.Split(raw, sep) {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}

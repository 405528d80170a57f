package domain

import "strings"

// CoalesceStr returns the first string from vals that is not blank.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package service

import "strings"

// sanitizeUTF8 drops invalid UTF-8 sequences so model output can be stored
// and returned as JSON.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

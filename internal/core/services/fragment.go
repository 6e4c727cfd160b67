package services

import (
	"net/url"
	"strings"
)

// ParseFragment decodes the key/value pairs of a redirect fragment.
//
// Pairs are split on "&" and then on the first "=" only, so values may
// contain "=". Keys and values are percent-decoded independently; "+" stays
// literal. A component that fails to decode is kept as-is. Pairs with no
// "=" map to "", pairs with an empty key are skipped.
func ParseFragment(fragment string) map[string]string {
	fragment = strings.TrimPrefix(fragment, "#")
	out := make(map[string]string)
	if fragment == "" {
		return out
	}

	for _, part := range strings.Split(fragment, "&") {
		key, value, _ := strings.Cut(part, "=")
		if key == "" {
			continue
		}
		out[decodeComponent(key)] = decodeComponent(value)
	}
	return out
}

func decodeComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

package domain

import (
	"fmt"
	"strings"
)

// Profile is the subset of /me the presentation layer renders.
type Profile struct {
	ID    string
	Name  string
	Email string
}

// Permission is one entry of /me/permissions.
type Permission struct {
	Permission string
	Status     string
}

// Granted returns true if the permission status is "granted".
func (p Permission) Granted() bool {
	return strings.EqualFold(p.Status, "granted")
}

// ProfileOf reads the profile fields from a /me payload.
func ProfileOf(resp ProviderResponse) Profile {
	return Profile{
		ID:    StringAt(resp, "id"),
		Name:  StringAt(resp, "name"),
		Email: StringAt(resp, "email"),
	}
}

// PictureURLOf reads data.url from a /me/picture?redirect=0 payload.
func PictureURLOf(resp ProviderResponse) string {
	m, ok := resp.(map[string]any)
	if !ok {
		return ""
	}
	return StringAt(m["data"], "url")
}

// PermissionsOf reads the data array of a /me/permissions payload.
// Entries missing a name or status are reported as "unknown".
func PermissionsOf(resp ProviderResponse) []Permission {
	m, ok := resp.(map[string]any)
	if !ok {
		return nil
	}
	rows, ok := m["data"].([]any)
	if !ok {
		return nil
	}

	perms := make([]Permission, 0, len(rows))
	for _, row := range rows {
		p := Permission{
			Permission: StringAt(row, "permission"),
			Status:     StringAt(row, "status"),
		}
		if p.Permission == "" {
			p.Permission = "unknown"
		}
		if p.Status == "" {
			p.Status = "unknown"
		}
		perms = append(perms, p)
	}
	return perms
}

// StringAt returns obj[key] rendered as a string, or "" when obj is not an
// object, the key is missing or the value is itself an object or array.
// Numeric ids are formatted without exponent.
func StringAt(obj any, key string) string {
	m, ok := obj.(map[string]any)
	if !ok {
		return ""
	}
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Package render formats fetch results as styled terminal text.
// It is shared by the console presenter and the TUI.
package render

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// Placeholders shown before anything was fetched.
const (
	ProfilePlaceholder     = "Fetch to see the profile."
	PermissionsPlaceholder = "Fetch to see the granted permissions."
	RawPlaceholder         = "{}"
)

// EmailDisplay describes the email field for the profile card.
func EmailDisplay(profile domain.Profile, requestedFields []string) string {
	switch {
	case !domain.ContainsField(requestedFields, "email"):
		return "Not requested"
	case profile.Email == "":
		return "Not returned"
	default:
		return profile.Email
	}
}

// Profile renders the profile card: name, id, email, picture URL and any
// other requested scalar fields.
func Profile(s *styles.Styles, profile, picture domain.ProviderResponse, requestedFields []string) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	p := domain.ProfileOf(profile)

	name := p.Name
	if name == "" {
		name = "(no name)"
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(name))
	b.WriteString("\n")
	writeRow(&b, s, "ID", orDash(p.ID))
	writeRow(&b, s, "Email", EmailDisplay(p, requestedFields))

	pictureURL := domain.PictureURLOf(picture)
	if pictureURL == "" {
		writeRow(&b, s, "Picture", s.Muted.Render("No picture URL returned"))
	} else {
		writeRow(&b, s, "Picture", pictureURL)
	}

	for _, field := range requestedFields {
		if slices.Contains([]string{"id", "name", "email"}, field) {
			continue
		}
		value := domain.StringAt(profile, field)
		if value == "" {
			if m, ok := profile.(map[string]any); ok && m[field] != nil {
				value = compactJSON(m[field])
			}
		}
		writeRow(&b, s, field, orDash(value))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Permissions renders one line per permission, granted ones marked.
func Permissions(s *styles.Styles, permissions domain.ProviderResponse) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	perms := domain.PermissionsOf(permissions)
	if len(perms) == 0 {
		return s.Muted.Render("No permissions returned")
	}

	lines := make([]string, 0, len(perms))
	for _, p := range perms {
		if p.Granted() {
			lines = append(lines, s.Success.Render("✓ "+p.Permission))
			continue
		}
		lines = append(lines, s.Warning.Render(fmt.Sprintf("✗ %s (%s)", p.Permission, p.Status)))
	}
	return strings.Join(lines, "\n")
}

// JSON pretty-prints payload with two-space indentation.
func JSON(payload any) (string, error) {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(out), nil
}

func compactJSON(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(out)
}

func writeRow(b *strings.Builder, s *styles.Styles, label, value string) {
	fmt.Fprintf(b, "%s %s\n", s.Muted.Render(fmt.Sprintf("%-8s", label+":")), value)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

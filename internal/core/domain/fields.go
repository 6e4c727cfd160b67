package domain

import (
	"regexp"
	"strings"
)

// MaxFieldsLength is the longest raw fields string accepted, after trimming.
const MaxFieldsLength = 120

// fieldsPattern allows letters, digits, underscore, comma and whitespace.
var fieldsPattern = regexp.MustCompile(`^[a-zA-Z0-9_,\s]+$`)

// InputField identifies a user input the UI should focus after a validation failure.
type InputField string

// Inputs read by a fetch.
const (
	InputToken   InputField = "token"
	InputFields  InputField = "fields"
	InputPicture InputField = "picture"
)

// String returns the string representation.
func (f InputField) String() string {
	return string(f)
}

// ValidateFetchInput checks the raw token and fields strings.
// The first failing rule wins, in this order: token present, fields present,
// fields character set, fields length.
func ValidateFetchInput(token, fields string) error {
	if strings.TrimSpace(token) == "" {
		return &ValidationError{Field: InputToken, Message: "Invalid input: Access token is required."}
	}

	fields = strings.TrimSpace(fields)
	if fields == "" {
		return &ValidationError{Field: InputFields, Message: "Invalid input: Fields is required."}
	}
	if !fieldsPattern.MatchString(fields) {
		return &ValidationError{Field: InputFields, Message: "Invalid input: Fields contains invalid characters."}
	}
	if len(fields) > MaxFieldsLength {
		return &ValidationError{Field: InputFields, Message: "Invalid input: Fields is too long."}
	}
	return nil
}

// NormalizeFields splits a comma-separated fields string into a
// de-duplicated list, keeping the first-seen order and dropping empties.
func NormalizeFields(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ContainsField returns true if name is in fields.
func ContainsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

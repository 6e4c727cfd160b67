package driven

import "github.com/custodia-labs/graphscope/internal/core/domain"

// Presenter is the narrow rendering surface the core drives.
// Implementations decide how each call looks; the core never reads
// anything back from them.
type Presenter interface {
	// RenderProfile shows the profile card for a successful fetch.
	RenderProfile(profile, picture domain.ProviderResponse, requestedFields []string)

	// RenderPermissions shows the granted permission list.
	RenderPermissions(permissions domain.ProviderResponse)

	// RenderRawPayload shows any value as raw JSON.
	RenderRawPayload(payload any)

	// RenderEmpty replaces the profile and permission panels with message.
	RenderEmpty(message string)

	// ShowError displays a user-facing error or advisory.
	ShowError(message string)

	// ClearError hides the error display.
	ClearError()

	// SetStatus updates the status indicator.
	SetStatus(label string, kind domain.StatusKind)

	// SetSessionIndicator shows whether a token is held.
	SetSessionIndicator(label string, connected bool)

	// SetBusy disables interactive controls while true.
	SetBusy(busy bool)

	// FocusInput asks the UI to focus or reveal the given input.
	FocusInput(field domain.InputField)

	// ShowToken fills the token input; an empty token clears it.
	ShowToken(token string)

	// Reset restores every panel to its initial placeholder.
	Reset()
}

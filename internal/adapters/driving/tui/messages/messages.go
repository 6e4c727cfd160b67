// Package messages defines Bubbletea message types for the TUI.
//
// Presenter calls made by the core services arrive as these messages, so
// every change to the screen goes through the model's Update.
package messages

import (
	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// ProfileRendered carries a successful /me and /me/picture pair.
type ProfileRendered struct {
	Profile         domain.ProviderResponse
	Picture         domain.ProviderResponse
	RequestedFields []string
}

// PermissionsRendered carries the /me/permissions payload.
type PermissionsRendered struct {
	Permissions domain.ProviderResponse
}

// RawRendered carries any payload for the raw JSON panel.
type RawRendered struct {
	Payload any
}

// EmptyRendered replaces the profile and permission panels with Message.
type EmptyRendered struct {
	Message string
}

// ErrorShown displays a user-facing error or advisory.
type ErrorShown struct {
	Message string
}

// ErrorCleared hides the error line.
type ErrorCleared struct{}

// NoticeShown displays text the user must act on, such as the
// authorization URL when no browser is launched.
type NoticeShown struct {
	Text string
}

// StatusChanged updates the status indicator.
type StatusChanged struct {
	Label string
	Kind  domain.StatusKind
}

// SessionChanged updates the session indicator.
type SessionChanged struct {
	Label     string
	Connected bool
}

// BusyChanged locks or unlocks the controls.
type BusyChanged struct {
	Busy bool
}

// InputFocused asks the model to focus an input.
type InputFocused struct {
	Field domain.InputField
}

// TokenShown fills the token input; an empty token clears it.
type TokenShown struct {
	Token string
}

// ViewReset restores every panel to its placeholder.
type ViewReset struct{}

// FetchFinished reports the outcome of a presented fetch.
type FetchFinished struct {
	Outcome domain.FetchOutcome
}

// LoginFinished reports the end of a login round trip.
type LoginFinished struct {
	Result domain.RedirectResult
	Err    error
}

// LogoutFinished signals the local session was dropped.
type LogoutFinished struct{}

// ConfigReloaded carries a configuration reread after the file changed.
type ConfigReloaded struct {
	Config domain.AppConfig
	Err    error
}

// Copied reports the result of copying the raw JSON.
type Copied struct {
	Err error
}

package tui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// presenterBuffer is how many presentation calls may queue before a
// service call blocks on the model.
const presenterBuffer = 64

// Ensure Presenter implements the interface.
var (
	_ driven.Presenter = (*Presenter)(nil)
	_ io.Writer        = (*Presenter)(nil)
)

// Presenter turns service presentation calls into Bubbletea messages.
// Services must call it from commands, never from Update itself.
type Presenter struct {
	msgs chan tea.Msg
}

// NewPresenter creates a presenter with an empty queue.
func NewPresenter() *Presenter {
	return &Presenter{msgs: make(chan tea.Msg, presenterBuffer)}
}

// Listen returns a command that waits for the next presentation message.
// The model reissues it after handling each one.
func (p *Presenter) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-p.msgs
	}
}

func (p *Presenter) send(msg tea.Msg) {
	p.msgs <- msg
}

// RenderProfile implements driven.Presenter.
func (p *Presenter) RenderProfile(profile, picture domain.ProviderResponse, requestedFields []string) {
	p.send(messages.ProfileRendered{Profile: profile, Picture: picture, RequestedFields: requestedFields})
}

// RenderPermissions implements driven.Presenter.
func (p *Presenter) RenderPermissions(permissions domain.ProviderResponse) {
	p.send(messages.PermissionsRendered{Permissions: permissions})
}

// RenderRawPayload implements driven.Presenter.
func (p *Presenter) RenderRawPayload(payload any) {
	p.send(messages.RawRendered{Payload: payload})
}

// RenderEmpty implements driven.Presenter.
func (p *Presenter) RenderEmpty(message string) {
	p.send(messages.EmptyRendered{Message: message})
}

// ShowError implements driven.Presenter.
func (p *Presenter) ShowError(message string) {
	p.send(messages.ErrorShown{Message: message})
}

// ClearError implements driven.Presenter.
func (p *Presenter) ClearError() {
	p.send(messages.ErrorCleared{})
}

// SetStatus implements driven.Presenter.
func (p *Presenter) SetStatus(label string, kind domain.StatusKind) {
	p.send(messages.StatusChanged{Label: label, Kind: kind})
}

// SetSessionIndicator implements driven.Presenter.
func (p *Presenter) SetSessionIndicator(label string, connected bool) {
	p.send(messages.SessionChanged{Label: label, Connected: connected})
}

// SetBusy implements driven.Presenter.
func (p *Presenter) SetBusy(busy bool) {
	p.send(messages.BusyChanged{Busy: busy})
}

// FocusInput implements driven.Presenter.
func (p *Presenter) FocusInput(field domain.InputField) {
	p.send(messages.InputFocused{Field: field})
}

// ShowToken implements driven.Presenter.
func (p *Presenter) ShowToken(token string) {
	p.send(messages.TokenShown{Token: token})
}

// Write shows p as a notice. It lets the presenter stand in for the
// terminal the browser adapter prints the authorization URL to.
func (p *Presenter) Write(b []byte) (int, error) {
	p.send(messages.NoticeShown{Text: strings.TrimSpace(string(b))})
	return len(b), nil
}

// Reset implements driven.Presenter.
func (p *Presenter) Reset() {
	p.send(messages.ViewReset{})
}

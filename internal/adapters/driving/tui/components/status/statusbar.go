// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// Bar displays the session indicator, the status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model

	label string
	kind  domain.StatusKind

	sessionLabel string
	connected    bool

	busy  bool
	width int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &Bar{
		styles:       s,
		keymap:       km,
		spinner:      sp,
		label:        "Ready",
		kind:         domain.StatusIdle,
		sessionLabel: "Not connected",
		width:        80,
	}
}

// Update advances the spinner while busy.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || !s.busy {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	session := s.styles.Session(s.connected).Render("● " + s.sessionLabel)

	status := s.styles.Status(s.kind).Render(s.label)
	if s.busy {
		status = s.spinner.View() + " " + status
	}
	return session + s.styles.Muted.Render("  │  ") + status
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetStatus sets the status label and tone.
func (s *Bar) SetStatus(label string, kind domain.StatusKind) {
	s.label = label
	s.kind = kind
}

// Status returns the status label and tone.
func (s *Bar) Status() (string, domain.StatusKind) {
	return s.label, s.kind
}

// SetSession sets the session indicator.
func (s *Bar) SetSession(label string, connected bool) {
	s.sessionLabel = label
	s.connected = connected
}

// Connected reports whether the session indicator shows a token.
func (s *Bar) Connected() bool {
	return s.connected
}

// SetBusy starts or stops the spinner. The returned command drives the
// animation and is nil when stopping.
func (s *Bar) SetBusy(busy bool) tea.Cmd {
	wasBusy := s.busy
	s.busy = busy
	if busy && !wasBusy {
		return s.spinner.Tick
	}
	return nil
}

// Busy reports whether the spinner is running.
func (s *Bar) Busy() bool {
	return s.busy
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

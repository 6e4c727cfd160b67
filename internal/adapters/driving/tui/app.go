package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/render"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// fieldsCharLimit leaves room to type past the validated maximum so the
// length error can be seen.
const fieldsCharLimit = 200

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	help      help.Model
	statusBar *status.Bar

	token   *input.Field
	fields  *input.Field
	focus   domain.InputField
	picture int

	profile     string
	permissions string
	rawText     string
	raw         viewport.Model
	errMsg      string
	notice      string

	busy      bool
	loggingIn bool

	// copy writes to the system clipboard.
	copy func(text string) error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	cfg := ports.Config.Config()

	a := &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		help:      help.New(),
		statusBar: status.NewBar(s, km),
		token:     input.NewField(s, "Token", "paste an access token or press ctrl+l", input.Secret()),
		fields:    input.NewField(s, "Fields", domain.DefaultFields, input.WithCharLimit(fieldsCharLimit)),
		focus:     domain.InputToken,
		raw:       viewport.New(80, 8),
		copy:      clipboard.WriteAll,
	}

	a.fields.SetValue(cfg.DefaultFields)
	a.picture = pictureIndex(cfg.DefaultPictureType)
	a.token.Focus()

	session := ports.OAuth.Session()
	if session.Connected {
		a.token.SetValue(session.AccessToken)
		a.statusBar.SetSession("Connected", true)
	}

	a.resetPanels()
	return a, nil
}

// WithContext sets the context passed to every service call.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("GraphScope"),
		a.ports.Presenter.Listen(),
		a.listenConfig(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd

	case messages.ProfileRendered:
		a.profile = render.Profile(a.styles, msg.Profile, msg.Picture, msg.RequestedFields)
		return a, a.ports.Presenter.Listen()

	case messages.PermissionsRendered:
		a.permissions = render.Permissions(a.styles, msg.Permissions)
		return a, a.ports.Presenter.Listen()

	case messages.RawRendered:
		a.setRaw(msg.Payload)
		return a, a.ports.Presenter.Listen()

	case messages.EmptyRendered:
		a.profile = a.styles.Muted.Render(msg.Message)
		a.permissions = a.styles.Muted.Render(msg.Message)
		return a, a.ports.Presenter.Listen()

	case messages.ErrorShown:
		a.errMsg = msg.Message
		return a, a.ports.Presenter.Listen()

	case messages.ErrorCleared:
		a.errMsg = ""
		return a, a.ports.Presenter.Listen()

	case messages.NoticeShown:
		a.notice = msg.Text
		return a, a.ports.Presenter.Listen()

	case messages.StatusChanged:
		a.statusBar.SetStatus(msg.Label, msg.Kind)
		return a, a.ports.Presenter.Listen()

	case messages.SessionChanged:
		a.statusBar.SetSession(msg.Label, msg.Connected)
		return a, a.ports.Presenter.Listen()

	case messages.BusyChanged:
		a.busy = msg.Busy
		return a, tea.Batch(a.statusBar.SetBusy(msg.Busy), a.ports.Presenter.Listen())

	case messages.InputFocused:
		return a, tea.Batch(a.focusInput(msg.Field), a.ports.Presenter.Listen())

	case messages.TokenShown:
		a.token.SetValue(msg.Token)
		return a, a.ports.Presenter.Listen()

	case messages.ViewReset:
		a.resetPanels()
		return a, a.ports.Presenter.Listen()

	case messages.FetchFinished:
		logger.Debug("Fetch finished: %s", msg.Outcome.Kind)
		return a, nil

	case messages.LoginFinished:
		a.loggingIn = false
		a.notice = ""
		if msg.Err != nil && !presentedByFlow(msg.Err) {
			a.errMsg = "Login failed: " + msg.Err.Error()
			a.statusBar.SetStatus("Auth failed", domain.StatusBad)
		}
		return a, a.statusBar.SetBusy(false)

	case messages.LogoutFinished:
		return a, nil

	case messages.ConfigReloaded:
		a.applyConfig(msg)
		return a, a.listenConfig()

	case messages.Copied:
		if msg.Err != nil {
			a.errMsg = "Copy failed: " + msg.Err.Error()
			return a, nil
		}
		a.statusBar.SetStatus("Copied", domain.StatusOK)
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		if a.help.ShowAll && k == "esc" {
			a.help.ShowAll = false
			return a, nil
		}
		return a, tea.Quit

	case keymap.Matches(k, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case keymap.Matches(k, a.keymap.ToggleToken):
		a.token.ToggleReveal()
		return a, nil

	case keymap.Matches(k, a.keymap.Next), keymap.Matches(k, a.keymap.Prev):
		if a.focus == domain.InputToken {
			return a, a.focusInput(domain.InputFields)
		}
		return a, a.focusInput(domain.InputToken)

	case keymap.Matches(k, a.keymap.ScrollUp), keymap.Matches(k, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.raw, cmd = a.raw.Update(msg)
		return a, cmd

	case keymap.Matches(k, a.keymap.Copy):
		return a, a.copyRaw()
	}

	// The remaining actions are locked while a request is running.
	if a.busy || a.loggingIn {
		if isAction(a.keymap, k) {
			return a, nil
		}
		return a.updateFocused(msg)
	}

	switch {
	case keymap.Matches(k, a.keymap.Fetch):
		return a, a.fetch()

	case keymap.Matches(k, a.keymap.Login):
		a.loggingIn = true
		return a, tea.Batch(a.statusBar.SetBusy(true), a.login())

	case keymap.Matches(k, a.keymap.Logout):
		return a, a.logout()

	case keymap.Matches(k, a.keymap.Clear):
		a.resetPanels()
		a.errMsg = ""
		a.notice = ""
		a.statusBar.SetStatus("Cleared", domain.StatusIdle)
		return a, nil

	case keymap.Matches(k, a.keymap.Picture):
		a.picture = (a.picture + 1) % len(domain.PictureTypes())
		return a, nil
	}

	return a.updateFocused(msg)
}

func (a *App) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.focus == domain.InputFields {
		a.fields, cmd = a.fields.Update(msg)
	} else {
		a.token, cmd = a.token.Update(msg)
	}
	return a, cmd
}

func isAction(km *keymap.KeyMap, k string) bool {
	for _, b := range []bool{
		keymap.Matches(k, km.Fetch),
		keymap.Matches(k, km.Login),
		keymap.Matches(k, km.Logout),
		keymap.Matches(k, km.Clear),
		keymap.Matches(k, km.Picture),
	} {
		if b {
			return true
		}
	}
	return false
}

// fetch runs the presented fetch in a command; results arrive through
// the presenter.
func (a *App) fetch() tea.Cmd {
	ctx := a.ctx
	params := a.params()
	fetcher := a.ports.Fetch
	return func() tea.Msg {
		return messages.FetchFinished{Outcome: fetcher.Run(ctx, params)}
	}
}

func (a *App) login() tea.Cmd {
	ctx := a.ctx
	runner := a.ports.Login
	return func() tea.Msg {
		result, err := runner.Run(ctx)
		return messages.LoginFinished{Result: result, Err: err}
	}
}

func (a *App) logout() tea.Cmd {
	flow := a.ports.OAuth
	return func() tea.Msg {
		flow.Logout()
		return messages.LogoutFinished{}
	}
}

func (a *App) copyRaw() tea.Cmd {
	text := a.rawText
	write := a.copy
	return func() tea.Msg {
		return messages.Copied{Err: write(text)}
	}
}

func (a *App) listenConfig() tea.Cmd {
	updates := a.ports.ConfigUpdates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		reload, ok := <-updates
		if !ok {
			return nil
		}
		return reload
	}
}

func (a *App) applyConfig(msg messages.ConfigReloaded) {
	if msg.Err != nil {
		a.errMsg = "Config reload failed: " + msg.Err.Error()
		a.statusBar.SetStatus("Config error", domain.StatusBad)
		return
	}
	if strings.TrimSpace(a.fields.Value()) == "" {
		a.fields.SetValue(msg.Config.DefaultFields)
	}
	a.statusBar.SetStatus("Config reloaded", domain.StatusIdle)
}

// params reads the current inputs.
func (a *App) params() domain.FetchParams {
	return domain.FetchParams{
		Token:       a.token.Value(),
		Fields:      a.fields.Value(),
		PictureType: a.PictureType(),
	}
}

func (a *App) focusInput(field domain.InputField) tea.Cmd {
	switch field {
	case domain.InputToken:
		a.focus = domain.InputToken
		a.fields.Blur()
		return a.token.Focus()
	case domain.InputFields:
		a.focus = domain.InputFields
		a.token.Blur()
		return a.fields.Focus()
	default:
		return nil
	}
}

func (a *App) setRaw(payload any) {
	text, err := render.JSON(payload)
	if err != nil {
		text = render.RawPlaceholder
		logger.Warn("Render raw payload: %v", err)
	}
	a.rawText = text
	a.raw.SetContent(text)
	a.raw.GotoTop()
}

func (a *App) resetPanels() {
	a.profile = a.styles.Muted.Render(render.ProfilePlaceholder)
	a.permissions = a.styles.Muted.Render(render.PermissionsPlaceholder)
	a.rawText = render.RawPlaceholder
	a.raw.SetContent(render.RawPlaceholder)
	a.raw.GotoTop()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	panelWidth := (a.width - 4) / 2
	if panelWidth < 20 {
		panelWidth = 20
	}

	header := a.styles.Title.Render("GraphScope") + " " +
		a.styles.Muted.Render(a.ports.Config.Config().GraphVersion)

	sections := []string{
		header,
		a.token.View(),
		a.fields.View(),
		a.viewPicture(),
	}
	if a.errMsg != "" {
		sections = append(sections, a.styles.Error.Render("✗ "+a.errMsg))
	}
	if a.notice != "" {
		sections = append(sections, a.styles.Warning.Render(a.notice))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		a.viewPanel("Profile", a.profile, panelWidth),
		a.viewPanel("Permissions", a.permissions, panelWidth),
	)
	sections = append(sections,
		panels,
		a.viewPanel("Raw JSON", a.raw.View(), a.width-2),
		a.help.View(a.keymap),
		a.statusBar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewPanel(title, body string, width int) string {
	content := a.styles.Subtitle.Render(title) + "\n" + body
	return a.styles.Panel.Width(width).Render(content)
}

func (a *App) viewPicture() string {
	types := domain.PictureTypes()
	parts := make([]string, len(types))
	for i, p := range types {
		if i == a.picture {
			parts[i] = a.styles.Title.Render("[" + p.String() + "]")
			continue
		}
		parts[i] = a.styles.Muted.Render(p.String())
	}
	label := a.styles.Subtitle.Width(8).Render("Picture")
	return label + "  " + strings.Join(parts, " ")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.token.SetWidth(width)
	a.fields.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.help.Width = width

	// Header, inputs, picture, error, panels, help and status bar.
	rawHeight := height - 26
	if rawHeight < 4 {
		rawHeight = 4
	}
	a.raw.Width = width - 6
	a.raw.Height = rawHeight
}

// PictureType returns the selected picture size.
func (a *App) PictureType() domain.PictureType {
	return domain.PictureTypes()[a.picture]
}

// Focus returns the focused input.
func (a *App) Focus() domain.InputField {
	return a.focus
}

// Notice returns the notice line, such as an authorization URL to open.
func (a *App) Notice() string {
	return a.notice
}

// Err returns the error line.
func (a *App) Err() string {
	return a.errMsg
}

// Busy reports whether controls are locked.
func (a *App) Busy() bool {
	return a.busy || a.loggingIn
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

func pictureIndex(p domain.PictureType) int {
	for i, t := range domain.PictureTypes() {
		if t == p {
			return i
		}
	}
	return 0
}

// presentedByFlow reports whether the login flow already showed err.
func presentedByFlow(err error) bool {
	var (
		setupErr    *domain.SetupError
		providerErr *domain.OAuthProviderError
		securityErr *domain.OAuthSecurityError
	)
	return errors.As(err, &setupErr) || errors.As(err, &providerErr) || errors.As(err, &securityErr)
}

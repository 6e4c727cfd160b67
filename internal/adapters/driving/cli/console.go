package cli

import (
	"fmt"
	"io"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/render"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Ensure console implements the interface.
var _ driven.Presenter = (*console)(nil)

// console prints presentation calls as styled terminal lines.
// Results go to out; errors, advisories and the session line go to errOut.
type console struct {
	out    io.Writer
	errOut io.Writer
	styles *styles.Styles

	// raw also prints the raw JSON payload.
	raw bool
}

func newConsole(out, errOut io.Writer, raw bool) *console {
	return &console{
		out:    out,
		errOut: errOut,
		styles: styles.DefaultStyles(),
		raw:    raw,
	}
}

func (c *console) RenderProfile(profile, picture domain.ProviderResponse, requestedFields []string) {
	fmt.Fprintln(c.out, c.styles.Subtitle.Render("Profile"))
	fmt.Fprintln(c.out, render.Profile(c.styles, profile, picture, requestedFields))
	fmt.Fprintln(c.out)
}

func (c *console) RenderPermissions(permissions domain.ProviderResponse) {
	fmt.Fprintln(c.out, c.styles.Subtitle.Render("Permissions"))
	fmt.Fprintln(c.out, render.Permissions(c.styles, permissions))
	fmt.Fprintln(c.out)
}

func (c *console) RenderRawPayload(payload any) {
	if !c.raw {
		return
	}
	text, err := render.JSON(payload)
	if err != nil {
		logger.Warn("Render raw payload: %v", err)
		return
	}
	fmt.Fprintln(c.out, c.styles.Subtitle.Render("Raw JSON"))
	fmt.Fprintln(c.out, text)
}

func (c *console) RenderEmpty(message string) {
	fmt.Fprintln(c.out, c.styles.Muted.Render(message))
}

func (c *console) ShowError(message string) {
	fmt.Fprintln(c.errOut, c.styles.Error.Render("✗ "+message))
}

func (c *console) ClearError() {}

func (c *console) SetStatus(label string, kind domain.StatusKind) {
	logger.Debug("Status: %s (%s)", label, kind)
}

func (c *console) SetSessionIndicator(label string, connected bool) {
	fmt.Fprintln(c.errOut, c.styles.Session(connected).Render("● "+label))
}

func (c *console) SetBusy(busy bool) {
	logger.Debug("Busy: %t", busy)
}

func (c *console) FocusInput(field domain.InputField) {
	switch field {
	case domain.InputToken:
		fmt.Fprintln(c.errOut, c.styles.Muted.Render("  check --token or "+tokenEnv))
	case domain.InputFields:
		fmt.Fprintln(c.errOut, c.styles.Muted.Render("  check --fields"))
	case domain.InputPicture:
		fmt.Fprintln(c.errOut, c.styles.Muted.Render("  check --picture"))
	}
}

func (c *console) ShowToken(token string) {
	if token == "" {
		return
	}
	fmt.Fprintln(c.errOut, c.styles.Muted.Render("Token: "+logger.Secret(token)))
}

func (c *console) Reset() {}

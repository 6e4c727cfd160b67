package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

var (
	loginFetch      bool
	loginPaste      bool
	loginNoBrowser  bool
	loginPrintToken bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in through the browser and show the session",
	Long: `Open the provider's authorization dialog and wait for the redirect.

A local relay on the configured callback port receives the redirect and
hands the token back. The relay's redirect URI must be registered with
the provider. Use --paste when it cannot be reached, e.g. on a remote
host: copy the URL from the browser's address bar after logging in.

The session lives only as long as this process. Use --fetch to fetch
right away, or --print-token to hand the token to another command:

  export ` + tokenEnv + `=$(graphscope login --print-token)`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().BoolVar(&loginFetch, "fetch", false, "fetch the profile after logging in")
	loginCmd.Flags().BoolVar(&loginPaste, "paste", false, "read the redirect URL from stdin instead of the local relay")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "print the authorization URL without opening a browser")
	loginCmd.Flags().BoolVar(&loginPrintToken, "print-token", false, "print only the access token on stdout")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if loginPrintToken {
		out = cmd.ErrOrStderr()
	}

	console := newConsole(out, cmd.ErrOrStderr(), false)
	services, err := buildServices(Options{
		Presenter: console,
		Out:       cmd.ErrOrStderr(),
		NoBrowser: loginNoBrowser,
	})
	if err != nil {
		return err
	}

	var result domain.RedirectResult
	if loginPaste {
		result, err = services.Login.Paste(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
	} else {
		result, err = services.Login.Run(cmd.Context())
	}
	if err != nil {
		if presented(err) {
			return reported(err)
		}
		return fmt.Errorf("login: %w", err)
	}
	if result.Kind != domain.RedirectSuccess {
		return errors.New("login: redirect carried no token")
	}

	if loginPrintToken {
		fmt.Fprintln(cmd.OutOrStdout(), result.AccessToken)
	}

	if !loginFetch {
		return nil
	}

	outcome := services.Fetch.Run(cmd.Context(), domain.FetchParams{
		Token:  result.AccessToken,
		Fields: services.Config.Config().DefaultFields,
	})
	return outcomeError(outcome)
}

// presented reports whether the login flow already showed err.
func presented(err error) bool {
	return errorsAs[*domain.SetupError](err) ||
		errorsAs[*domain.OAuthProviderError](err) ||
		errorsAs[*domain.OAuthSecurityError](err)
}

func errorsAs[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

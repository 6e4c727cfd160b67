package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/render"
	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// tokenEnv supplies the access token when --token is not given.
const tokenEnv = "GRAPHSCOPE_ACCESS_TOKEN"

// ErrNoToken is returned when no token was given and none can be prompted for.
var ErrNoToken = errors.New("no access token: pass --token, set " + tokenEnv + " or run in a terminal")

var (
	fetchToken   string
	fetchFields  string
	fetchPicture string
	fetchJSON    bool
	fetchRaw     bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the profile, picture and permissions for a token",
	Long: `Fetch /me, /me/picture and /me/permissions concurrently.

The token is taken from --token, then ` + tokenEnv + `, then a hidden
prompt when stdin is a terminal.

Examples:
  graphscope fetch --fields id,name,email
  graphscope fetch --picture small --json | jq .permissions`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchToken, "token", "t", "", "access token")
	fetchCmd.Flags().StringVarP(&fetchFields, "fields", "f", "", "comma-separated /me fields (default from config)")
	fetchCmd.Flags().StringVarP(&fetchPicture, "picture", "p", "", "picture size: small, normal, large or square")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print the combined raw payload as JSON only")
	fetchCmd.Flags().BoolVar(&fetchRaw, "raw", false, "also print the raw JSON payload")
	rootCmd.AddCommand(fetchCmd)
}

// isTerminal and readSecret are replaced in tests.
var (
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readSecret = func() (string, error) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		return string(b), err
	}
)

func runFetch(cmd *cobra.Command, _ []string) error {
	console := newConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), fetchRaw)
	services, err := buildServices(Options{Presenter: console})
	if err != nil {
		return err
	}

	token, err := resolveToken(cmd, fetchToken)
	if err != nil {
		return err
	}

	params := domain.FetchParams{
		Token:       token,
		Fields:      fetchFields,
		PictureType: domain.PictureType(fetchPicture),
	}
	if params.Fields == "" {
		params.Fields = services.Config.Config().DefaultFields
	}

	if fetchJSON {
		return fetchAsJSON(cmd, services, params)
	}

	outcome := services.Fetch.Run(cmd.Context(), params)
	return outcomeError(outcome)
}

// fetchAsJSON prints the combined payload, or the error payload on
// failure, with nothing else on stdout.
func fetchAsJSON(cmd *cobra.Command, services *Services, params domain.FetchParams) error {
	result, err := services.Fetch.Fetch(cmd.Context(), params)
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			if text, jsonErr := render.JSON(fetchErr.Payload()); jsonErr == nil {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
		}
		return err
	}

	text, err := render.JSON(result.Combined())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if result.NoResults {
		return errors.New("no results found: /me returned no id")
	}
	return nil
}

// outcomeError converts a presented outcome to the command's error. The
// presenter has already shown it.
func outcomeError(outcome domain.FetchOutcome) error {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return nil
	case domain.OutcomeBusy:
		return outcome.Err
	default:
		if outcome.Err != nil {
			return reported(outcome.Err)
		}
		return reported(errors.New(outcome.Message))
	}
}

// resolveToken returns the flag value, then the environment, then a
// hidden prompt.
func resolveToken(cmd *cobra.Command, flagValue string) (string, error) {
	if token := strings.TrimSpace(flagValue); token != "" {
		return token, nil
	}
	if token := strings.TrimSpace(os.Getenv(tokenEnv)); token != "" {
		return token, nil
	}
	if !isTerminal() {
		return "", ErrNoToken
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Access token: ")
	token, err := readSecret()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(token), nil
}

// Package logger provides verbose logging for GraphScope.
// When verbose mode is enabled via the --verbose flag, diagnostic lines
// for the login round trip and API calls are printed to stderr.
// Access tokens must pass through Secret or RedactURL before being logged.
package logger

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// secretParams are query parameters whose values are never logged.
var secretParams = []string{"access_token", "state", "client_secret"}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	logf("\n=== ", "%s ===", name)
}

// Secret masks a credential for logging, keeping only enough of it to
// tell two tokens apart.
func Secret(s string) string {
	switch {
	case s == "":
		return "<empty>"
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "…" + s[len(s)-2:]
	}
}

// RedactURL returns raw with secret query parameters masked.
// Unparseable input is replaced entirely.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, Secret(q.Get(p)))
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// Package oauth provides the local redirect relay for the implicit grant.
//
// The provider returns the token in the URL fragment, which browsers never
// send to a server. The relay serves a small page at /callback whose script
// posts location.hash back to /callback/fragment and then strips it from
// the address bar.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/graphscope/internal/logger"
)

const (
	// CallbackPath is the redirect target registered with the provider.
	CallbackPath = "/callback"

	// FragmentPath receives the fragment posted by the relay page.
	FragmentPath = "/callback/fragment"

	// maxFragmentSize bounds the posted fragment.
	maxFragmentSize = 16 << 10
)

// ErrTimeout is returned by WaitForFragment when no redirect arrived in time.
var ErrTimeout = errors.New("timeout waiting for authorization callback")

// CallbackServer relays the redirect fragment from the browser to the CLI.
type CallbackServer struct {
	mu       sync.Mutex
	port     int
	fragChan chan string
	errChan  chan error
	server   *http.Server
	listener net.Listener
}

// NewCallbackServer creates a relay for the given port.
// If port is 0, a random available port is chosen on Start.
func NewCallbackServer(port int) *CallbackServer {
	return &CallbackServer{
		port:     port,
		fragChan: make(chan string, 1),
		errChan:  make(chan error, 1),
	}
}

// Handler returns the relay routes.
func (s *CallbackServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get(CallbackPath, s.handleCallback)
	r.Post(FragmentPath, s.handleFragment)
	return r
}

// Start listens on 127.0.0.1 and serves the relay in the background.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Store the actual port (important when port was 0)
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Debug("Callback relay listening on %s", s.RedirectURI())
	return nil
}

// handleCallback serves the relay page. A provider error reported in the
// query string is delivered directly, since there is no fragment to relay.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if r.URL.Query().Get("error") != "" {
		s.deliver(r.URL.RawQuery)
		renderPage(w, pageData{
			Title:   "Authorization failed",
			Message: r.URL.Query().Get("error_description"),
		})
		return
	}

	renderPage(w, pageData{
		Title:   "Returning to GraphScope…",
		Message: "Keep this tab open for a moment.",
		Relay:   true,
	})
}

// handleFragment accepts {"fragment": "..."} from the relay page.
func (s *CallbackServer) handleFragment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Fragment string `json:"fragment"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFragmentSize)).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if !s.deliver(body.Fragment) {
		http.Error(w, "redirect already received", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte(`{"status":"received"}`))
}

// deliver hands fragment to WaitForFragment. Only the first redirect is
// kept; later ones report false.
func (s *CallbackServer) deliver(fragment string) bool {
	select {
	case s.fragChan <- fragment:
		return true
	default:
		return false
	}
}

// WaitForFragment blocks until the relay receives a redirect, the server
// fails, or ctx ends. The returned fragment has no leading "#".
func (s *CallbackServer) WaitForFragment(ctx context.Context) (string, error) {
	select {
	case fragment := <-s.fragChan:
		return trimHash(fragment), nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

// Stop shuts down the callback server.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	return s.port
}

// RedirectURI returns the redirect URI for this callback server.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, CallbackPath)
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}

func trimHash(fragment string) string {
	if len(fragment) > 0 && fragment[0] == '#' {
		return fragment[1:]
	}
	return fragment
}

type pageData struct {
	Title   string
	Message string
	Relay   bool
}

func (pageData) FragmentPath() string {
	return FragmentPath
}

func renderPage(w http.ResponseWriter, data pageData) {
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Warn("Render callback page: %v", err)
	}
}

//nolint:misspell // CSS properties use American spelling
var pageTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>GraphScope - Login</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
        }
        h1 { color: #333F50; margin: 0 0 8px 0; font-size: 24px; font-weight: 600; }
        p { color: #7B8088; margin: 0; font-size: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <h1 id="title">{{.Title}}</h1>
        <p id="message">{{.Message}}</p>
    </div>
{{- if .Relay}}
    <script>
    (function () {
        var fragment = window.location.hash.replace(/^#/, "");
        history.replaceState(null, "", window.location.pathname + window.location.search);
        var title = document.getElementById("title");
        var message = document.getElementById("message");
        if (!fragment) {
            title.textContent = "Nothing to relay";
            message.textContent = "This page expects a login redirect.";
            return;
        }
        fetch("{{.FragmentPath}}", {
            method: "POST",
            headers: {"Content-Type": "application/json"},
            body: JSON.stringify({fragment: fragment})
        }).then(function (resp) {
            title.textContent = resp.ok ? "Login received" : "Login already received";
            message.textContent = "You can close this window and return to the terminal.";
        }).catch(function () {
            title.textContent = "Could not reach GraphScope";
            message.textContent = "Is the login command still running?";
        });
    })();
    </script>
{{- end}}
</body>
</html>`))

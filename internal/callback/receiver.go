// Package callback receives the OAuth redirect on a loopback address and
// completes the authorization with the returned code.
package callback

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const Path = "/callback"

var (
	ErrStateMismatch = errors.New("state mismatch")
	ErrNoCode        = errors.New("no authorization code received")
	ErrAuthorize     = errors.New("authorization failed")
)

// Authorizer exchanges a code for a session. It is satisfied by *vkapi.Client.
type Authorizer interface {
	Authorize(ctx context.Context, code string) bool
	ErrorMessage() string
}

// Result is the outcome of one callback.
type Result struct {
	// Forward is the page the user asked to continue to, if any.
	Forward string
}

// ProviderError is an error reported by the authorization page itself,
// e.g. when the user denies access.
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("oauth error: %s - %s", e.Code, e.Description)
}

// NewState returns a random state value for one authorization attempt.
func NewState() string {
	return uuid.NewString()
}

// Receiver is an http.Handler for the redirect target. The first callback
// completes it; later ones are answered but ignored.
type Receiver struct {
	expectedState string
	authorizer    Authorizer
	logger        zerolog.Logger
	forwardHosts  map[string]bool

	once   sync.Once
	result chan Result
	errs   chan error

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

type ReceiverOption func(*Receiver)

func WithLogger(l zerolog.Logger) ReceiverOption {
	return func(r *Receiver) {
		r.logger = l
	}
}

// WithForwardOrigins allows forward redirects to the hosts of the given URLs.
// Empty or unparsable URLs are skipped. Relative paths are always allowed.
func WithForwardOrigins(urls ...string) ReceiverOption {
	return func(r *Receiver) {
		for _, raw := range urls {
			u, err := url.Parse(raw)
			if err != nil || u.Host == "" {
				continue
			}
			r.forwardHosts[strings.ToLower(u.Host)] = true
		}
	}
}

// NewReceiver creates a Receiver accepting only callbacks that carry state.
func NewReceiver(state string, authorizer Authorizer, options ...ReceiverOption) *Receiver {
	r := &Receiver{
		expectedState: state,
		authorizer:    authorizer,
		logger:        log.Logger,
		forwardHosts:  map[string]bool{},
		result:        make(chan Result, 1),
		errs:          make(chan error, 1),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// ServeHTTP handles the redirect from the authorization page.
func (r *Receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	if code := query.Get("error"); code != "" {
		err := &ProviderError{Code: code, Description: query.Get("error_description")}
		r.finish(Result{}, err)
		writePage(w, http.StatusOK, "Authorization failed", err.Description)
		return
	}

	if state := query.Get("state"); state != r.expectedState {
		r.finish(Result{}, errors.Wrapf(ErrStateMismatch, "got %q", state))
		writePage(w, http.StatusBadRequest, "Authorization failed", "invalid state parameter")
		return
	}

	code := query.Get("code")
	if code == "" {
		r.finish(Result{}, ErrNoCode)
		writePage(w, http.StatusBadRequest, "Authorization failed", "no code received")
		return
	}

	if !r.authorizer.Authorize(req.Context(), code) {
		msg := r.authorizer.ErrorMessage()
		r.finish(Result{}, errors.Wrap(ErrAuthorize, msg))
		writePage(w, http.StatusOK, "Authorization failed", msg)
		return
	}

	forward := query.Get("forward")
	if forward != "" && !r.forwardAllowed(forward) {
		r.logger.Warn().Str("forward", forward).Msg("forward target not allowed, ignoring it")
		forward = ""
	}
	r.finish(Result{Forward: forward}, nil)
	if forward != "" {
		http.Redirect(w, req, forward, http.StatusFound)
		return
	}
	writePage(w, http.StatusOK, "Authorization successful", "You can close this window and return to the application.")
}

// forwardAllowed accepts same-site paths and absolute http(s) URLs on an
// allowed host.
func (r *Receiver) forwardAllowed(forward string) bool {
	if strings.ContainsAny(forward, "\\\r\n") {
		return false
	}
	u, err := url.Parse(forward)
	if err != nil {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(forward, "//")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return r.forwardHosts[strings.ToLower(u.Host)]
}

func (r *Receiver) finish(result Result, err error) {
	r.once.Do(func() {
		if err != nil {
			r.logger.Warn().Err(err).Msg("oauth callback failed")
			r.errs <- err
			return
		}
		r.logger.Info().Msg("oauth callback authorized")
		r.result <- result
	})
}

// Wait blocks until the first callback was handled or ctx is done.
func (r *Receiver) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-r.result:
		return res, nil
	case err := <-r.errs:
		return Result{}, err
	case <-ctx.Done():
		return Result{}, errors.Wrap(ctx.Err(), "[Receiver.Wait] waiting for authorization callback")
	}
}

// Start listens on addr, for example "127.0.0.1:0", and serves Path.
func (r *Receiver) Start(addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "[Receiver.Start] listen on %s", addr)
	}
	mux := http.NewServeMux()
	mux.Handle(Path, r)

	r.listener = listener
	r.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := r.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			r.finish(Result{}, errors.Wrap(err, "[Receiver.Start] serve"))
		}
	}()
	r.logger.Debug().Str("addr", listener.Addr().String()).Msg("oauth callback listening")
	return nil
}

// RedirectURI is the URI to register as redirect target after Start.
func (r *Receiver) RedirectURI() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return ""
	}
	return "http://" + r.listener.Addr().String() + Path
}

// Stop shuts the server down.
func (r *Receiver) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%[1]s</title></head>
<body onload="if (window.opener) { window.close(); }">
<h1>%[1]s</h1>
<p>%[2]s</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// Package transport performs the single outbound GET behind every VK request.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxRedirects = 5
	DefaultUserAgent    = "go-vk-client"
)

var errTooManyRedirects = errors.New("stopped after too many redirects")

// Response is the raw outcome of a request.
type Response struct {
	URI    string
	Status int
	Body   []byte
}

// Doer is the fetch capability consumed by the API client.
type Doer interface {
	Execute(ctx context.Context, uri string) (*Response, error)
}

var _ Doer = (*Executor)(nil)

// Executor issues GET requests with a bounded timeout and redirect count.
// It never retries.
type Executor struct {
	client    *http.Client
	timeout   time.Duration // applied to a copy of client; zero keeps client's own
	userAgent string
	logger    zerolog.Logger
}

// ExecutorOption defines a function type to modify the Executor instance.
type ExecutorOption func(*Executor)

// WithHTTPClient replaces the underlying client. Its redirect policy is used as
// given, and so is its timeout unless WithTimeout is also set. The client
// itself is never modified.
func WithHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) {
		e.client = c
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) ExecutorOption {
	return func(e *Executor) {
		e.userAgent = ua
	}
}

// WithTimeout overrides the request timeout, whatever the option order.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor builds an Executor on a pooled, instrumented transport.
func NewExecutor(options ...ExecutorOption) *Executor {
	e := &Executor{
		client: &http.Client{
			Transport:     otelhttp.NewTransport(cleanhttp.DefaultPooledTransport()),
			Timeout:       DefaultTimeout,
			CheckRedirect: limitRedirects(DefaultMaxRedirects),
		},
		userAgent: DefaultUserAgent,
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.timeout > 0 {
		client := *e.client
		client.Timeout = e.timeout
		e.client = &client
	}
	return e
}

func limitRedirects(max int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errTooManyRedirects
		}
		return nil
	}
}

// Execute performs exactly one GET against uri. Any status outside 2xx/3xx is
// reported as a TransportError together with the last URI attempted.
func (e *Executor) Execute(ctx context.Context, uri string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &TransportError{URI: uri, Err: err}
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		te := &TransportError{URI: uri, Err: err}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.URL != "" {
			te.URI = urlErr.URL
		}
		if resp != nil {
			te.Status = resp.StatusCode
		}
		e.logger.Warn().Err(err).Str("uri", redact(te.URI)).Msg("vk request failed")
		return nil, te
	}
	defer resp.Body.Close()

	lastURI := uri
	if resp.Request != nil && resp.Request.URL != nil {
		lastURI = resp.Request.URL.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URI: lastURI, Status: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}

	e.logger.Debug().
		Str("uri", redact(lastURI)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("vk request")

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, &TransportError{URI: lastURI, Status: resp.StatusCode}
	}

	return &Response{URI: lastURI, Status: resp.StatusCode, Body: body}, nil
}

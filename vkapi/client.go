// Package vkapi is a client for the VK API: it obtains an access token through
// the OAuth code flow, keeps it in a session store and calls API methods with it.
//
//	client, err := vkapi.New(vkapi.DefaultConfig(id, secret, "offline"), sessions.NewInMemoryStore())
//	if !client.Authenticated(ctx) {
//		if code == "" {
//			redirect(client.AuthURI("https://mysite.example/"))
//		} else if !client.Authorize(ctx, code) {
//			log.Print(client.ErrorMessage())
//		}
//	}
//	payload, err := client.Call(ctx, "users.get", uri.NewParams("user_ids", "1"))
package vkapi

import (
	"context"
	"strings"
	"sync"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/jrsteele09/go-vk-client/response"
	"github.com/jrsteele09/go-vk-client/sessions"
	"github.com/jrsteele09/go-vk-client/transport"
	"github.com/jrsteele09/go-vk-client/uri"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	paramAccessToken  = "access_token"
	paramClientSecret = "client_secret"
	paramCode         = "code"
	paramDisplay      = "display"
	paramFormat       = "format"
	paramRedirectURI  = "redirect_uri"
	paramResponseType = "response_type"
	paramScope        = "scope"
	paramState        = "state"
	paramVersion      = "v"

	responseTypeCode = "code"
	formatJSON       = "json"
)

// Client talks to the VK API on behalf of one session, selected by the
// configured scope.
type Client struct {
	config     Config
	store      sessions.Store
	doer       transport.Doer
	logger     zerolog.Logger
	sessionKey string

	mu          sync.RWMutex
	redirectURI string
	lastErr     error
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithDoer replaces the HTTP executor.
func WithDoer(d transport.Doer) ClientOption {
	return func(c *Client) {
		c.doer = d
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRedirectURI sets the initial redirect URI used by Authorize.
func WithRedirectURI(redirectURI string) ClientOption {
	return func(c *Client) {
		c.redirectURI = redirectURI
	}
}

// New initializes a Client. The store is required; the HTTP executor defaults
// to transport.NewExecutor.
func New(config Config, store sessions.Store, options ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[vkapi.New] invalid config")
	}
	if store == nil {
		return nil, errors.New("[vkapi.New] session store is required")
	}

	config = config.withDefaults()
	c := &Client{
		config:     config,
		store:      store,
		logger:     log.Logger,
		sessionKey: sessions.Key(config.Scope),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.doer == nil {
		c.doer = transport.NewExecutor(transport.WithLogger(c.logger))
	}
	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	cfg := c.config
	cfg.Scope = append([]string(nil), c.config.Scope...)
	return cfg
}

// SessionKey returns the store key of this client's session.
func (c *Client) SessionKey() string {
	return c.sessionKey
}

// SetRedirectURI sets where VK sends the user back to. Authorize must use the
// same value that was in the authorization link.
func (c *Client) SetRedirectURI(redirectURI string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redirectURI = redirectURI
}

// RedirectURI returns the current redirect target.
func (c *Client) RedirectURI() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redirectURI
}

// redirectTarget is the redirect_uri actually sent to VK.
func (c *Client) redirectTarget() string {
	return uri.ForwardURL(c.config.ForwardURL, c.RedirectURI())
}

// AuthURI returns the authorization link for redirectURI and remembers
// redirectURI for the following Authorize.
func (c *Client) AuthURI(redirectURI string) string {
	return c.AuthURIWithState(redirectURI, "")
}

// AuthURIWithState is AuthURI with an opaque state value that VK echoes back.
func (c *Client) AuthURIWithState(redirectURI, state string) string {
	c.SetRedirectURI(redirectURI)

	params := uri.NewParams(
		paramScope, strings.Join(c.config.Scope, ","),
		paramDisplay, c.config.Display,
		paramRedirectURI, c.redirectTarget(),
		paramResponseType, responseTypeCode,
		paramState, state,
	)
	return uri.Build(c.config.Endpoint.AuthURL, params, c.config.ClientID, "", false)
}

// Authorize exchanges code for an access token and stores it. It reports
// success as a bool and never returns an error: on failure the reason is
// available from ErrorMessage. An already authorized session returns true
// without contacting VK.
func (c *Client) Authorize(ctx context.Context, code string) bool {
	session, err := c.store.Get(ctx, c.sessionKey)
	if err != nil {
		c.fail(errors.Wrap(err, "[Client.Authorize] store.Get"))
		return false
	}
	if session.Authenticated() {
		return true
	}

	params := uri.NewParams(
		paramClientSecret, c.config.ClientSecret,
		paramRedirectURI, c.redirectTarget(),
		paramCode, code,
	)
	payload, err := c.fetch(ctx, uri.Build(c.config.Endpoint.TokenURL, params, c.config.ClientID, "", false))
	if err != nil {
		c.fail(err)
		return false
	}

	token, err := response.DecodeToken(payload)
	if err != nil {
		c.fail(err)
		return false
	}
	if token.AccessToken == "" {
		c.fail(vkerrors.ErrEmptyAccessToken)
		return false
	}

	session = &sessions.Session{
		UserID:      token.UserID,
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		Email:       token.Email,
	}
	if err := c.store.Set(ctx, c.sessionKey, session, c.config.SessionTTL); err != nil {
		c.fail(errors.Wrap(err, "[Client.Authorize] store.Set"))
		return false
	}

	c.logger.Info().Int64("user_id", utils.Value(token.UserID)).Msg("vk session authorized")
	return true
}

// Call invokes the API method with params and returns the decoded payload.
// The stored access token is added unless params already has one; without any
// token the call fails with an *AuthRequiredError before any request is made.
// Transport, decode and remote errors are returned as they are.
func (c *Client) Call(ctx context.Context, method string, params uri.Params) (response.Payload, error) {
	params = params.Clone()

	if params.Get(paramAccessToken) == "" {
		session, err := c.store.Get(ctx, c.sessionKey)
		if err != nil {
			return response.Payload{}, errors.Wrap(err, "[Client.Call] store.Get")
		}
		params = params.Set(paramAccessToken, session.AccessToken)
	}
	if params.Get(paramAccessToken) == "" {
		return response.Payload{}, &AuthRequiredError{Method: method}
	}

	if c.config.APIVersion != "" {
		params = params.SetDefault(paramVersion, c.config.APIVersion)
	}
	if c.config.Signed {
		params = params.SetDefault(paramFormat, formatJSON)
	}

	u := uri.Build(uri.MethodURL(c.config.MethodURL, method), params, c.config.ClientID, c.config.ClientSecret, c.config.Signed)
	return c.fetch(ctx, u)
}

// fetch executes u and decodes the body. A soft API error is recorded as the
// last error without failing.
func (c *Client) fetch(ctx context.Context, u string) (response.Payload, error) {
	resp, err := c.doer.Execute(ctx, u)
	if err != nil {
		return response.Payload{}, err
	}

	payload, warning, err := response.Decode(resp.Body)
	if err != nil {
		return response.Payload{}, err
	}
	if warning != "" {
		c.logger.Warn().Str("warning", warning).Msg("vk response contains an unstructured error")
		c.setLastError(&WarningError{Message: warning})
	}
	return payload, nil
}

func (c *Client) fail(err error) {
	c.logger.Warn().Err(err).Str("kind", Kind(err).String()).Msg("vk authorization failed")
	c.setLastError(err)
}

func (c *Client) setLastError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

// LastError returns the most recent recorded failure or warning.
func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// ErrorMessage returns the message of LastError, or "".
func (c *Client) ErrorMessage() string {
	if err := c.LastError(); err != nil {
		return err.Error()
	}
	return ""
}

// Session returns a copy of the stored session.
func (c *Client) Session(ctx context.Context) (*sessions.Session, error) {
	session, err := c.store.Get(ctx, c.sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Session] store.Get")
	}
	return session.Clone(), nil
}

// session reads the stored session, treating store failures as "not authorized".
func (c *Client) session(ctx context.Context) *sessions.Session {
	session, err := c.store.Get(ctx, c.sessionKey)
	if err != nil {
		c.logger.Warn().Err(err).Msg("vk session read failed")
		return &sessions.Session{}
	}
	return session
}

// Authenticated reports whether the session holds an access token.
func (c *Client) Authenticated(ctx context.Context) bool {
	return c.session(ctx).Authenticated()
}

// UserID returns the authorized user's id.
func (c *Client) UserID(ctx context.Context) (int64, bool) {
	return utils.ValueOk(c.session(ctx).UserID)
}

// AccessToken returns the stored access token, or "".
func (c *Client) AccessToken(ctx context.Context) string {
	return c.session(ctx).AccessToken
}

// ExpiresIn returns the token lifetime in seconds as reported at authorization.
func (c *Client) ExpiresIn(ctx context.Context) (int64, bool) {
	return utils.ValueOk(c.session(ctx).ExpiresIn)
}

// Email returns the user's email when the email scope was granted.
func (c *Client) Email(ctx context.Context) string {
	return c.session(ctx).Email
}

// Token returns the stored session as an oauth2 token. ExpiresIn is only a
// hint from authorization time, so the token carries no Expiry; user_id and
// email are available through Extra.
func (c *Client) Token(ctx context.Context) (*oauth2.Token, error) {
	session, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, ErrAuthRequired
	}

	extra := map[string]any{}
	if userID, ok := utils.ValueOk(session.UserID); ok {
		extra["user_id"] = userID
	}
	if expiresIn, ok := utils.ValueOk(session.ExpiresIn); ok {
		extra["expires_in"] = expiresIn
	}
	if session.Email != "" {
		extra["email"] = session.Email
	}
	token := &oauth2.Token{AccessToken: session.AccessToken, TokenType: "Bearer"}
	return token.WithExtra(extra), nil
}

// TokenSource adapts the client to oauth2.TokenSource, reading the store on
// each call with a bounded context.
func (c *Client) TokenSource() oauth2.TokenSource {
	return tokenSource{client: c}
}

type tokenSource struct {
	client *Client
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), transport.DefaultTimeout)
	defer cancel()
	return ts.client.Token(ctx)
}

package vkapi

import (
	"time"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/sessions"
	"golang.org/x/oauth2"
)

const (
	DefaultAuthURL   = "https://oauth.vk.com/authorize"
	DefaultTokenURL  = "https://oauth.vk.com/access_token"
	DefaultMethodURL = "https://api.vk.com/method"
	DefaultDisplay   = "popup"
)

// Endpoint is the VK OAuth endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  DefaultAuthURL,
	TokenURL: DefaultTokenURL,
}

// Config is the client configuration. The client keeps its own copy, so
// changing a Config after New has no effect.
type Config struct {
	ClientID     string
	ClientSecret string

	// Endpoint holds the authorization and token exchange URLs.
	Endpoint oauth2.Endpoint

	// MethodURL is either a base URL (method appended as a path segment) or a
	// template containing %s.
	MethodURL string

	// APIVersion is sent as v on method calls; empty sends nothing.
	APIVersion string

	// Scope lists requested permissions; it also selects the session.
	Scope []string

	// ForwardURL, when set, is the redirect_uri sent to VK, with the real
	// redirect target carried in its forward parameter.
	ForwardURL string

	// Signed switches method calls to the sorted+MD5 signed protocol variant.
	Signed bool

	// SessionTTL is passed to the store on every write.
	SessionTTL time.Duration

	// Display is the auth page display mode.
	Display string
}

// DefaultConfig returns a Config pointing at the public VK endpoints.
func DefaultConfig(clientID, clientSecret string, scope ...string) Config {
	return Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		MethodURL:    DefaultMethodURL,
		Scope:        scope,
		SessionTTL:   sessions.DefaultTTL,
		Display:      DefaultDisplay,
	}
}

// Validate checks the fields New cannot default.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return vkerrors.ErrInvalidClientID
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Endpoint.AuthURL == "" {
		c.Endpoint.AuthURL = DefaultAuthURL
	}
	if c.Endpoint.TokenURL == "" {
		c.Endpoint.TokenURL = DefaultTokenURL
	}
	if c.MethodURL == "" {
		c.MethodURL = DefaultMethodURL
	}
	if c.Display == "" {
		c.Display = DefaultDisplay
	}
	c.Scope = append([]string(nil), c.Scope...)
	return c
}

package config

import (
	"strconv"

	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/jrsteele09/go-vk-client/vkapi"
	"github.com/rs/zerolog/log"
)

const (
	clientIDVar     = "VK_CLIENT_ID"
	clientSecretVar = "VK_CLIENT_SECRET"
	scopeVar        = "VK_SCOPE"
	apiVersionVar   = "VK_API_VERSION"
	signedVar       = "VK_SIGNED"
	forwardURLVar   = "VK_FORWARD_URL"
	redirectURIVar  = "VK_REDIRECT_URI"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetScope() []string
	GetAPIVersion() string
	GetSigned() bool
	GetForwardURL() string
	GetRedirectURI() string
}

type OAuth struct {
	env EnvVars
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.env.get(clientIDVar, "")
}

func (o OAuth) GetClientSecret() string {
	return o.env.get(clientSecretVar, "")
}

func (o OAuth) GetScope() []string {
	return utils.SplitList(o.env.get(scopeVar, "offline"))
}

func (o OAuth) GetAPIVersion() string {
	return o.env.get(apiVersionVar, "5.131")
}

func (o OAuth) GetSigned() bool {
	raw := o.env.get(signedVar, "false")
	signed, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warn().Str(signedVar, raw).Msg("not a boolean, using unsigned calls")
		return false
	}
	return signed
}

func (o OAuth) GetForwardURL() string {
	return o.env.get(forwardURLVar, "")
}

func (o OAuth) GetRedirectURI() string {
	return o.env.get(redirectURIVar, "http://127.0.0.1:8976/callback")
}

// ClientConfig converts c into the configuration of a vkapi.Client.
func ClientConfig(c Config) vkapi.Config {
	cfg := vkapi.DefaultConfig(c.GetClientID(), c.GetClientSecret(), c.GetScope()...)
	cfg.APIVersion = c.GetAPIVersion()
	cfg.Signed = c.GetSigned()
	cfg.ForwardURL = c.GetForwardURL()
	cfg.SessionTTL = c.GetSessionTTL()
	return cfg
}

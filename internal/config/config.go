package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

type Config interface {
	EnvConfig
	OAuthConfig
	StoreConfig
}

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Store
}

// New returns a Config backed by environment variables only.
func New() Config {
	return newConfig(values{})
}

// Load returns a Config backed by the TOML file at path, with environment
// variables taking precedence over the file. An empty path behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[config.Load] read")
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "[config.Load] parse %s", path)
	}
	return newConfig(f.values()), nil
}

func newConfig(v values) Config {
	env := EnvVars{file: v}
	return mainConfig{
		EnvVars: env,
		OAuth:   OAuth{env: env},
		Store:   Store{env: env},
	}
}

package config

import (
	"strconv"
	"strings"
)

// File is the layout of the optional TOML configuration file. Every key maps
// to the environment variable of the same meaning.
//
//	client_id = "51234567"
//	scope = ["offline", "email"]
//	api_version = "5.131"
//
//	[store]
//	driver = "sqlite"
//	data_folder = "./data"
type File struct {
	AppName      string    `toml:"app_name"`
	LogLevel     string    `toml:"log_level"`
	ClientID     string    `toml:"client_id"`
	ClientSecret string    `toml:"client_secret"`
	Scope        []string  `toml:"scope"`
	APIVersion   string    `toml:"api_version"`
	Signed       *bool     `toml:"signed"`
	ForwardURL   string    `toml:"forward_url"`
	RedirectURI  string    `toml:"redirect_uri"`
	Store        FileStore `toml:"store"`
}

type FileStore struct {
	Driver     string `toml:"driver"`
	RedisAddr  string `toml:"redis_addr"`
	DataFolder string `toml:"data_folder"`
	SessionTTL string `toml:"session_ttl"`
}

// values is the file content keyed by environment variable name.
type values map[string]string

func (f File) values() values {
	v := values{
		appNameVar:      f.AppName,
		logLevelVar:     f.LogLevel,
		clientIDVar:     f.ClientID,
		clientSecretVar: f.ClientSecret,
		scopeVar:        strings.Join(f.Scope, ","),
		apiVersionVar:   f.APIVersion,
		forwardURLVar:   f.ForwardURL,
		redirectURIVar:  f.RedirectURI,
		storeVar:        f.Store.Driver,
		redisAddrVar:    f.Store.RedisAddr,
		folderEnvVar:    f.Store.DataFolder,
		sessionTTLVar:   f.Store.SessionTTL,
	}
	if f.Signed != nil {
		v[signedVar] = strconv.FormatBool(*f.Signed)
	}
	return v
}

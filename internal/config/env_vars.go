package config

import (
	"os"
	"strings"
)

const (
	appNameVar     = "VK_APP_NAME"
	logLevelVar    = "VK_LOG_LEVEL"
	environmentVar = "VK_ENV"
)

type EnvVars struct {
	file values
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.get(appNameVar, "VK Client")
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.get(logLevelVar, "info"))
}

func (e EnvVars) GetEnv() string {
	return e.get(environmentVar, "DEV")
}

// get resolves envVar from the environment, then the config file, then defaultValue.
func (e EnvVars) get(envVar, defaultValue string) string {
	if value := GetEnv(envVar, e.file[envVar]); value != "" {
		return value
	}
	return defaultValue
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

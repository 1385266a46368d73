package config

import (
	"strings"
	"time"

	"github.com/jrsteele09/go-vk-client/sessions"
	"github.com/rs/zerolog/log"
)

const (
	storeVar      = "VK_STORE"
	redisAddrVar  = "VK_REDIS_ADDR"
	folderEnvVar  = "VK_DATA_FOLDER"
	sessionTTLVar = "VK_SESSION_TTL"
)

// Session store drivers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

type StoreConfig interface {
	GetStore() string
	GetRedisAddr() string
	GetDataFolder() string
	GetSessionTTL() time.Duration
}

type Store struct {
	env EnvVars
}

var _ StoreConfig = Store{}

func (s Store) GetStore() string {
	return strings.ToLower(s.env.get(storeVar, StoreSQLite))
}

func (s Store) GetRedisAddr() string {
	return s.env.get(redisAddrVar, "localhost:6379")
}

func (s Store) GetDataFolder() string {
	return s.env.get(folderEnvVar, "./data")
}

func (s Store) GetSessionTTL() time.Duration {
	raw := s.env.get(sessionTTLVar, "")
	if raw == "" {
		return sessions.DefaultTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str(sessionTTLVar, raw).Dur("default", sessions.DefaultTTL).Msg("invalid duration, using default")
		return sessions.DefaultTTL
	}
	return ttl
}

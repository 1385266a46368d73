package main

import (
	"github.com/jrsteele09/go-vk-client/internal/config"
	"github.com/jrsteele09/go-vk-client/sessions"
	"github.com/jrsteele09/go-vk-client/sessions/redisstore"
	"github.com/jrsteele09/go-vk-client/sessions/sqlitestore"
	"github.com/jrsteele09/go-vk-client/vkapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// app is the composition root shared by all commands.
type app struct {
	configPath string

	cfg        config.Config
	client     *vkapi.Client
	closeStore func() error
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	setLogLevel(cfg.GetLogLevel())

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	client, err := vkapi.New(config.ClientConfig(cfg), store,
		vkapi.WithLogger(log.Logger),
		vkapi.WithRedirectURI(cfg.GetRedirectURI()))
	if err != nil {
		_ = closeStore()
		return err
	}

	a.cfg = cfg
	a.client = client
	a.closeStore = closeStore
	return nil
}

func (a *app) close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

// openStore returns the session store selected by c and a function releasing it.
func openStore(c config.StoreConfig) (sessions.Store, func() error, error) {
	switch driver := c.GetStore(); driver {
	case config.StoreMemory:
		log.Warn().Msg("memory session store does not survive the process, use it for testing only")
		return sessions.NewInMemoryStore(), func() error { return nil }, nil
	case config.StoreRedis:
		store, err := redisstore.NewRedisStoreFromOptions(redisstore.RedisOptions{Addr: c.GetRedisAddr()})
		if err != nil {
			return nil, nil, errors.Wrap(err, "[openStore] redis")
		}
		return store, func() error { store.Close(); return nil }, nil
	case config.StoreSQLite:
		store, err := sqlitestore.NewStore(c.GetDataFolder())
		if err != nil {
			return nil, nil, errors.Wrap(err, "[openStore] sqlite")
		}
		log.Debug().Str("path", store.Path()).Msg("sqlite session store")
		return store, store.Close, nil
	default:
		return nil, nil, errors.Errorf("[openStore] unknown session store %q", driver)
	}
}

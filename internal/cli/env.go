package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/byetax/byetax/internal/api"
	"github.com/byetax/byetax/internal/config"
	"github.com/byetax/byetax/internal/log"
	"github.com/byetax/byetax/internal/session"
)

const storeFile = "state.db"

// env is what every command needs: config, event log, credential store
// and an API client.
type env struct {
	dir    string
	cfg    *config.Config
	log    *log.Logger
	store  *session.Store
	gate   *session.Gate
	client *api.Client
}

func openEnv() (*env, error) {
	dir, err := config.StateDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	logger, err := log.NewLogger(dir, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	store, err := session.NewStore(filepath.Join(dir, storeFile))
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger.Zap()),
	)
	return &env{
		dir:    dir,
		cfg:    cfg,
		log:    logger,
		store:  store,
		gate:   session.NewGate(store),
		client: client,
	}, nil
}

func (e *env) Close() {
	_ = e.store.Close()
	_ = e.log.Close()
}

// authed returns a client carrying the stored credential.
func (e *env) authed() (*api.Client, error) {
	cred, err := e.gate.Credential()
	if err == session.ErrNoCredential {
		return nil, fmt.Errorf("not logged in; run 'byetax login' first")
	}
	if err != nil {
		return nil, err
	}
	return e.client.WithCredential(cred), nil
}

// check turns a rejected credential into a logout and a readable error.
func (e *env) check(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		_ = e.gate.Logout()
		e.log.Event(log.EventAuthFailed, zap.Error(err))
		return fmt.Errorf("session expired; run 'byetax login' again")
	}
	e.log.Error("cli", err)
	return errors.New(api.Message(err))
}

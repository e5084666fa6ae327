package main

import (
	"context"
	"fmt"

	"github.com/slm-1056101/raven/internal/api"
	"github.com/slm-1056101/raven/internal/config"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/internal/view"
	"github.com/slm-1056101/raven/pkg/validator"
)

// app wires config, API client, token storage and the session store for a
// single command invocation.
type app struct {
	cfg      *config.Config
	client   *api.Client
	store    *session.Store
	validate *validator.Validator
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))

	tokens, err := session.NewFileTokenStorage(cfg.Token.Path)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(client, tokens)

	return &app{
		cfg:      cfg,
		client:   client,
		store:    store,
		validate: validator.NewValidator(),
	}, nil
}

// restore rehydrates a persisted session and enforces the view guard for
// protected screens.
func (a *app) restore(ctx context.Context, required view.View) error {
	if err := a.store.Rehydrate(ctx); err != nil {
		return fmt.Errorf("session restore failed, please login again: %w", err)
	}
	if resolved := view.Resolve(required, a.store.CurrentUser() != nil); resolved == view.Login && required != view.Login {
		return fmt.Errorf("please login first")
	}
	return nil
}

// cliNotifier prints the transient messages the web UI shows as toasts.
type cliNotifier struct{}

func (cliNotifier) Info(msg string)    { fmt.Println("•", msg) }
func (cliNotifier) Success(msg string) { fmt.Println("✓", msg) }
func (cliNotifier) Error(msg string)   { fmt.Println("✗", msg) }

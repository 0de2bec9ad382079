package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/salaryhelper/salaryhelper-client/internal/config"
	"github.com/salaryhelper/salaryhelper-client/internal/logger"
	"github.com/salaryhelper/salaryhelper-client/internal/session"
	"github.com/salaryhelper/salaryhelper-client/pkg/apiclient"
	"github.com/salaryhelper/salaryhelper-client/pkg/publishers"
)

// App owns the API client and everything it depends on: the session store
// and the optional session event publishers. Close releases both.
type App struct {
	cfg     *config.Config
	client  *apiclient.Client
	session *session.Session
	fanout  *publishers.Fanout
	log     logger.Logger
}

// New builds the runtime from config.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := session.NewStore(cfg.SessionStore, session.Options{
		Path:        cfg.SessionPath,
		RedisAddr:   cfg.RedisAddr,
		RedisDB:     cfg.RedisDB,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}
	log.InfoObj("session store initialized", "session_config", map[string]any{
		"type": cfg.SessionStore,
		"path": cfg.SessionPath,
	})
	sess := session.New(store)

	fanout, err := publishers.FromFile(ctx, cfg.PublishersFile, log)
	if err != nil {
		sess.Close()
		return nil, err
	}
	if fanout.Size() > 0 {
		log.InfoObj("session publishers loaded", "publishers_meta", map[string]any{
			"count":      fanout.Size(),
			"publishers": fanout.Describe(),
		})
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:   cfg.APIBase,
		ParseMode: apiclient.ParseMode(cfg.ParseMode),
		Timeout:   cfg.RequestTimeout,
		Session:   sess,
		Events:    fanout,
		Logger:    log,
	})

	return &App{
		cfg:     cfg,
		client:  client,
		session: sess,
		fanout:  fanout,
		log:     log,
	}, nil
}

// Client returns the configured API client.
func (a *App) Client() *apiclient.Client { return a.client }

// Bootstrap fetches a small page of conversations and logs the outcome.
// A failed call is logged, not returned: start-up continues either way.
func (a *App) Bootstrap(ctx context.Context) {
	a.log.InfoObj("client loaded", "client_state", map[string]any{
		"api_base":   a.cfg.APIBase,
		"parse_mode": a.cfg.ParseMode,
		"logged_in":  a.client.IsLoggedIn(),
	})

	convs, err := a.client.ListConversations(ctx, a.cfg.BootstrapLimit)
	if err != nil {
		a.log.ErrorObj("client error", "error", err.Error())
		return
	}
	a.log.InfoObj("convs", "conversations", convs)
}

// Close releases the session store and publishers.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if err := a.fanout.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publishers: %w", err))
	}
	if err := a.session.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close session store: %w", err))
	}
	return errors.Join(errs...)
}

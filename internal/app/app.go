// Package app wires the plugin together: standalone host, translator,
// token registry, settings store, timer engine and action dispatcher.
package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"elapse/internal/actions"
	"elapse/internal/config"
	"elapse/internal/engine"
	"elapse/internal/host"
	"elapse/internal/host/gormhost"
	"elapse/internal/i18n"
	"elapse/internal/logger"
	"elapse/internal/scheduler"
	"elapse/internal/settings"
	"elapse/internal/token"
)

// App is the composed plugin, constructed once at startup.
type App struct {
	cfg        *config.Config
	host       *gormhost.Host
	translator *i18n.Translator
	tokens     *token.Registry
	store      *settings.Store
	engine     *engine.Engine
	dispatcher *actions.Dispatcher
	refresher  *scheduler.Refresher
}

// New builds the full object graph from configuration.
func New(cfg *config.Config) (*App, error) {
	// Config.Load already validates this, but New also takes
	// hand-built configs.
	var refreshInterval time.Duration
	if cfg.Refresh.Enabled {
		interval, ok := scheduler.ParseIntervalDuration(cfg.Refresh.Interval)
		if !ok {
			return nil, fmt.Errorf("app: invalid refresh interval %q", cfg.Refresh.Interval)
		}
		refreshInterval = interval
	}

	translator, err := i18n.Load(cfg.Host.LocalesDir, cfg.Host.Locale)
	if err != nil {
		return nil, err
	}
	identity := host.Identity{
		AppID:   cfg.Host.AppID,
		Version: cfg.Host.Version,
		Locale:  translator.Locale(),
	}
	h, err := gormhost.Open(cfg.Host.DBPath, translator, identity)
	if err != nil {
		return nil, err
	}
	tokens := token.NewRegistry(h, h.Translate)
	store := settings.NewStore(h, tokens, settings.StoreConfig{
		Key:         cfg.Host.SettingsKey,
		ResetOnSync: cfg.Tokens.ResetOnSync,
	})
	eng := engine.New(store, tokens, h.Translate)
	dispatcher := actions.NewDispatcher(&actions.Deps{
		Engine:          eng,
		Tokens:          tokens,
		Store:           store,
		Locale:          translator.Locale(),
		DefaultCurrency: cfg.Currency.DefaultCode,
	})

	a := &App{
		cfg:        cfg,
		host:       h,
		translator: translator,
		tokens:     tokens,
		store:      store,
		engine:     eng,
		dispatcher: dispatcher,
	}
	if cfg.Refresh.Enabled {
		a.refresher = scheduler.NewRefresher(refreshInterval, func(ctx context.Context) error {
			return dispatcher.Invoke(ctx, actions.ActRefreshDurations, struct{}{})
		})
	}
	return a, nil
}

// Dispatcher exposes the action entry point for embedding hosts.
func (a *App) Dispatcher() *actions.Dispatcher {
	return a.dispatcher
}

// Run loads persisted state, restores the token set and processes
// actions until ctx ends.
func (a *App) Run(ctx context.Context) error {
	id := a.host.Identity()
	logger.Infof("starting %s %s (locale=%s)", id.AppID, id.Version, id.Locale)

	if err := a.store.Load(ctx); err != nil {
		return err
	}
	if err := a.bootstrapTokens(ctx); err != nil {
		return err
	}

	a.dispatcher.Start()
	defer a.dispatcher.Stop()
	defer func() {
		if err := a.host.Close(); err != nil {
			logger.Warnf("closing host store failed: %v", err)
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	if a.refresher != nil {
		g.Go(func() error { return a.refresher.Run(ctx) })
	}
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	return g.Wait()
}

// bootstrapTokens recreates the token set for the loaded document and
// republishes the last known totals, so a restart leaves the host with
// the same tokens and values it had before. Runs before the dispatcher
// starts, so direct store access is safe here.
func (a *App) bootstrapTokens(ctx context.Context) error {
	doc := a.store.Document()
	if persisted, err := a.host.ListTokenIDs(ctx); err == nil && len(persisted) > 0 {
		logger.Infof("restoring %d persisted tokens", len(persisted))
	}
	if err := a.store.SyncTokens(ctx, doc.Variables, nil); err != nil {
		return err
	}
	for _, total := range doc.Totals {
		if total.DurationText != "" {
			if err := a.tokens.Set(ctx, total.Name, token.KindDuration, total.DurationText); err != nil {
				return err
			}
		}
		if total.Comparison != nil {
			if err := a.tokens.Set(ctx, total.Name, token.KindComparison, *total.Comparison); err != nil {
				return err
			}
		}
	}
	return nil
}

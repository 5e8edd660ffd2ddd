package electionbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/m3rciful/electionbot/core/bootstrap"
	corecmd "github.com/m3rciful/electionbot/core/cmd"
	"github.com/m3rciful/electionbot/core/logger"
	tg "github.com/m3rciful/electionbot/core/telegram"
	"github.com/m3rciful/electionbot/core/telegram/commands"
	"github.com/m3rciful/electionbot/core/telegram/router"
	"github.com/m3rciful/electionbot/core/telegram/sender"
	"github.com/m3rciful/electionbot/internal/election"
	"github.com/m3rciful/electionbot/internal/menu"
)

// App holds the wired bot.
type App struct {
	cfg      *Config
	service  *Service
	handlers *Handlers
	registry *tg.Registry
}

// New wires the fetcher, the menu service and the Telegram handlers.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("electionbot: nil config")
	}
	service := NewService(ServiceOptions{
		Source:    election.NewClient(cfg.Election.ClientOptions()),
		PhotoPath: cfg.Election.CandidatePhoto,
	})
	handlers := NewHandlers(service, cfg.Election)

	reg := tg.NewRegistry()
	reg.RegisterCommand(menu.StartCommand, commands.Command{
		Handler:     handlers.Start,
		Description: "Show the election menu",
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler:     handlers.Status,
		Description: "Bot status",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.SetTextFallback(handlers.Text)

	return &App{
		cfg:      cfg,
		service:  service,
		handlers: handlers,
		registry: reg,
	}, nil
}

// TelegramRunOptions assembles middleware, routes and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()
	mws := tg.DefaultMiddlewares(core, a.handlers.Limited)

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{AdminID: core.Telegram.AdminID})
	routes = append(routes, router.TextRoutes(a.registry, router.TextOptions{UnknownMedia: a.handlers.Text})...)

	summary, _ := logger.SummarizeStrings(tg.MiddlewareNames(mws), 8)
	logger.Info(context.Background(), "tg.wire", "app.wired",
		slog.String("middlewares", summary),
		slog.Int("routes", len(routes)),
	)

	return tg.RunOptions{
		Config:   core,
		Registry: a.registry,
		DispatcherOptions: sender.Options{
			QueueSize:    64,
			Workers:      4,
			MaxRetries:   2,
			RetryBackoff: time.Second,
			EnqueueWait:  3 * time.Second,
		},
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			a.handlers.AttachSender(rt.Dispatcher)
			return nil
		},
	}, nil
}

// Checks are the startup probes run by Bootstrap.
func (a *App) Checks() []bootstrap.Check {
	return []bootstrap.Check{{
		Name: "candidate_photo",
		Run: func(context.Context) error {
			if a.service.PhotoOutcome() == PhotoMissing {
				return fmt.Errorf("%s: %w", a.cfg.Election.CandidatePhoto, os.ErrNotExist)
			}
			return nil
		},
	}}
}

// Bootstrap is the corecmd bootstrap hook: logger, startup checks, app.
func Bootstrap(ctx context.Context, carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("electionbot: unexpected config type %T", carrier)
	}
	app, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := bootstrap.Run(ctx, bootstrap.Options{Config: cfg.CoreConfig(), Checks: app.Checks()}); err != nil {
		return nil, err
	}
	return app, nil
}

// LoadCarrier adapts LoadConfig to corecmd.Options.LoadConfig.
func LoadCarrier(path string) (corecmd.ConfigCarrier, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

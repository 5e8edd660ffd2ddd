package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/electionbot/core/logger"
	tg "github.com/m3rciful/electionbot/core/telegram"
	"github.com/m3rciful/electionbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes binds every registered command to its endpoint, wrapped with
// the handler summary log and the admin check where required.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOnly := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	names := reg.CommandNames()
	routes := make([]tg.Route, 0, len(names))
	for _, name := range names {
		def := reg.Commands()[name]
		handlerName := normalizeHandlerName(name)
		inner := def.Handler
		h := func(c tele.Context) error {
			return handleWithSummary(c, handlerName, time.Now(), "", "", func() error {
				return inner(c)
			})
		}
		if def.AdminOnly {
			h = adminOnly(h)
		}
		routes = append(routes, tg.Route{Endpoint: name, Handler: h})
	}

	summary, truncated := logger.SummarizeStrings(names, 10)
	logger.Info(context.Background(), "tg.wire", "commands.wired",
		slog.Int("commands", len(names)),
		slog.String("names", summary),
		slog.Bool("truncated", truncated),
	)
	return routes
}

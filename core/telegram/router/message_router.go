package router

import (
	"time"

	tg "github.com/m3rciful/electionbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls fallback behaviour for non-text updates and text
// nobody handles.
type TextOptions struct {
	UnknownText tele.HandlerFunc
	// UnknownMedia answers photos, stickers, documents and similar updates.
	UnknownMedia tele.HandlerFunc
}

// TextRoutes routes free text: registered commands first, then the registry's
// text fallback, then UnknownText.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	text := func(c tele.Context) error {
		start := time.Now()
		msg := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(msg); ok && cmd.Handler != nil && isCommand(msg) {
				if cmd.AdminOnly {
					return skip(c, start)
				}
				return handleWithSummary(c, normalizeHandlerName(key), start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "fallback", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}
		return skip(c, start)
	}

	routes := []tg.Route{{Endpoint: tele.OnText, Handler: text}}
	if opts.UnknownMedia != nil {
		media := func(c tele.Context) error {
			return handleWithSummary(c, "unknown_media", time.Now(), "", "", func() error {
				return opts.UnknownMedia(c)
			})
		}
		for _, ep := range []string{tele.OnPhoto, tele.OnSticker, tele.OnDocument, tele.OnVoice, tele.OnVideo} {
			routes = append(routes, tg.Route{Endpoint: ep, Handler: media})
		}
	}
	return routes
}

func isCommand(text string) bool {
	return len(text) > 1 && text[0] == '/'
}

func skip(c tele.Context, start time.Time) error {
	logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
	return nil
}

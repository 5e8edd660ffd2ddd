package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/electionbot/core/logger"
	tghelpers "github.com/m3rciful/electionbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const dedupWindow = 10 * time.Second

// recent remembers processed update ids so a receipt is logged once even when
// the middleware wraps several branches.
var recent = struct {
	sync.Mutex
	seen map[int]time.Time
}{seen: make(map[int]time.Time)}

func alreadyLogged(updateID int) bool {
	now := time.Now()
	recent.Lock()
	defer recent.Unlock()
	for id, ts := range recent.seen {
		if now.Sub(ts) > dedupWindow {
			delete(recent.seen, id)
		}
	}
	if _, ok := recent.seen[updateID]; ok {
		return true
	}
	recent.seen[updateID] = now
	return false
}

// LoggerMiddleware builds the request context (RID, trace id, update meta),
// stores it on c and logs a sampled receipt line per update.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		var chatID, userID int64
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := tghelpers.BuildContext(c)

		if logger.ShouldSampleDebug() && !alreadyLogged(upd.ID) {
			attrs := []slog.Attr{
				slog.String("status", "ok"),
				slog.Int("update_id", upd.ID),
			}
			if chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user != nil && user.Username != "" {
				attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
			}
			if user != nil && user.LanguageCode != "" {
				attrs = append(attrs, slog.String("lang", user.LanguageCode))
			}
			if upd.Message != nil {
				if t := c.Text(); t != "" {
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
				}
			}
			logger.Debug(ctx, "tg", "update.received", attrs...)
		}

		return next(c)
	}
}

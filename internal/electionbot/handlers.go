package electionbot

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/m3rciful/electionbot/core/buildinfo"
	"github.com/m3rciful/electionbot/core/telegram/format"
	tghelpers "github.com/m3rciful/electionbot/core/telegram/helpers"
	"github.com/m3rciful/electionbot/core/telegram/keyboard"
	"github.com/m3rciful/electionbot/core/telegram/sender"
	"github.com/m3rciful/electionbot/core/telegram/state"
	"github.com/m3rciful/electionbot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

// telegramSink answers in the chat of the update it wraps.
type telegramSink struct {
	c tele.Context
}

func (s telegramSink) SendHTML(_ context.Context, text string, withMenu bool) error {
	if withMenu {
		return tghelpers.SendHTML(s.c, text, keyboard.OneTimeReplyButtons(menu.Labels()...))
	}
	return tghelpers.SendHTML(s.c, text)
}

func (s telegramSink) SendPhoto(_ context.Context, path, caption string) error {
	return tghelpers.SendPhoto(s.c, path, caption)
}

// Handlers adapts Telegram updates to the Service and keeps each user's menu state.
type Handlers struct {
	service   *Service
	sessions  state.Manager
	election  ElectionConfig
	startedAt time.Time
	sender    atomic.Pointer[sender.Dispatcher]

	seen  sync.Map // user id -> struct{}
	users atomic.Int64
}

// NewHandlers builds handlers with an empty in-memory session store.
func NewHandlers(service *Service, cfg ElectionConfig) *Handlers {
	return &Handlers{
		service:   service,
		sessions:  state.NewMemoryManager(state.State(menu.StateRoot)),
		election:  cfg,
		startedAt: time.Now(),
	}
}

// AttachSender exposes the outbound dispatcher counters to /status.
func (h *Handlers) AttachSender(d *sender.Dispatcher) {
	h.sender.Store(d)
}

func senderID(c tele.Context) int64 {
	if u := c.Sender(); u != nil {
		return u.ID
	}
	if ch := c.Chat(); ch != nil {
		return ch.ID
	}
	return 0
}

// Start handles /start.
func (h *Handlers) Start(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id := senderID(c)
	h.noteUser(id)
	next, err := h.service.Start(ctx, telegramSink{c: c})
	h.sessions.SetState(id, state.State(next))
	return err
}

// Text handles every message that is not a command, including menu labels.
func (h *Handlers) Text(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	id := senderID(c)
	h.noteUser(id)
	current := menu.State(h.sessions.GetState(id))
	next, err := h.service.Handle(ctx, current, c.Text(), telegramSink{c: c})
	h.sessions.SetState(id, state.State(next))
	return err
}

func (h *Handlers) noteUser(id int64) {
	if id == 0 {
		return
	}
	if _, loaded := h.seen.LoadOrStore(id, struct{}{}); !loaded {
		h.users.Add(1)
	}
}

// Limited tells a user they hit the rate limit.
func (h *Handlers) Limited(c tele.Context) error {
	return tghelpers.SendText(c, RateLimitedText)
}

// Status reports build, uptime and delivery counters to the admin.
func (h *Handlers) Status(c tele.Context) error {
	return tghelpers.SendHTML(c, h.statusText())
}

func (h *Handlers) statusText() string {
	var sent, failed uint64
	if d := h.sender.Load(); d != nil {
		sent, failed = d.SentCount(), d.ErrorCount()
	}

	var b strings.Builder
	b.WriteString(format.Bold("electionbot") + " " + format.EscapeHTML(buildinfo.String()) + "\n")
	b.WriteString("Started: " + humanize.Time(h.startedAt) + "\n")
	b.WriteString("Users seen: " + humanize.Comma(h.users.Load()) + "\n")
	b.WriteString("Replies sent: " + humanize.Comma(int64(sent)) + ", failed: " + humanize.Comma(int64(failed)) + "\n")
	b.WriteString("Quick count: " + format.EscapeHTML(h.election.QuickCountURL) + "\n")
	b.WriteString("Candidates: " + format.EscapeHTML(h.election.CandidatesURL) + "\n")
	b.WriteString("Photo: " + format.EscapeHTML(h.election.CandidatePhoto) + " (" + h.service.PhotoOutcome().String() + ")")
	return b.String()
}

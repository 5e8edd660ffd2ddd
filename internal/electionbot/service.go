// Package electionbot wires the election menu to Telegram.
package electionbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/m3rciful/electionbot/core/logger"
	"github.com/m3rciful/electionbot/core/telegram/format"
	"github.com/m3rciful/electionbot/internal/election"
	"github.com/m3rciful/electionbot/internal/menu"
)

// Reply texts.
const (
	UnavailableText  = "Sorry, the election data is unavailable right now. Please try again later."
	NoCandidatesText = "No candidate data is available yet."
	PhotoCaption     = "Photo of the candidates."
	PhotoMissingText = "Sorry, the photo could not be found."
	RateLimitedText  = "You are sending messages too fast. Please wait a moment."
)

// IntroText is the menu message.
var IntroText = "This handy bot parses data directly from the official " +
	format.Bold("KPU (General Election Commission)") +
	" website, providing you with Quick-time updates on candidates, election results, and important announcements 📢.\n\n" +
	"by " + format.Link("https://github.com/1tte", "1tte")

// Source provides election documents.
type Source interface {
	QuickCount(ctx context.Context) (election.QuickCount, error)
	Candidates(ctx context.Context) ([]election.Candidate, error)
}

// Sink delivers replies to the user who sent the message.
type Sink interface {
	// SendHTML sends an HTML message, with the menu keyboard when withMenu is set.
	SendHTML(ctx context.Context, text string, withMenu bool) error
	SendPhoto(ctx context.Context, path, caption string) error
}

// PhotoOutcome tells which branch the candidate photo step took.
type PhotoOutcome int

const (
	PhotoAttached PhotoOutcome = iota
	PhotoMissing
)

func (p PhotoOutcome) String() string {
	if p == PhotoMissing {
		return "missing"
	}
	return "attached"
}

// ServiceOptions configures NewService.
type ServiceOptions struct {
	Source    Source
	PhotoPath string
	// Stat checks the photo path; nil means os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// Service runs one menu step per inbound message.
type Service struct {
	source    Source
	photoPath string
	stat      func(string) (os.FileInfo, error)
}

// NewService builds a Service.
func NewService(opts ServiceOptions) *Service {
	stat := opts.Stat
	if stat == nil {
		stat = os.Stat
	}
	photo := opts.PhotoPath
	if photo == "" {
		photo = DefaultCandidatePhoto
	}
	return &Service{source: opts.Source, photoPath: photo, stat: stat}
}

// Start handles the entry command: the menu is shown whatever the prior state.
func (s *Service) Start(ctx context.Context, sink Sink) (menu.State, error) {
	next, action := menu.Start()
	logger.Debug(ctx, "election.menu", "menu.start",
		slog.String("action", action.String()),
		slog.String("next_state", next.String()),
	)
	return next, s.run(ctx, action, sink)
}

// Handle resolves label, dispatches from current and performs the action.
// The returned state is valid even when err is not nil. Fetch failures are
// answered with UnavailableText before being returned.
func (s *Service) Handle(ctx context.Context, current menu.State, label string, sink Sink) (menu.State, error) {
	intent := menu.ResolveIntent(label)
	next, action := menu.Dispatch(current, intent)
	logger.Debug(ctx, "election.menu", "menu.dispatch",
		slog.String("state", current.String()),
		slog.String("intent", intent.String()),
		slog.String("action", action.String()),
		slog.String("next_state", next.String()),
	)
	return next, s.run(ctx, action, sink)
}

func (s *Service) run(ctx context.Context, action menu.Action, sink Sink) error {
	switch action {
	case menu.ActionRenderQuickCount:
		return s.quickCount(ctx, sink)
	case menu.ActionRenderCandidates:
		return s.candidates(ctx, sink)
	default:
		return sink.SendHTML(ctx, IntroText, true)
	}
}

func (s *Service) quickCount(ctx context.Context, sink Sink) error {
	qc, err := s.source.QuickCount(ctx)
	if err != nil {
		return s.unavailable(ctx, sink, err)
	}
	return sink.SendHTML(ctx, election.RenderQuickCount(qc), true)
}

func (s *Service) candidates(ctx context.Context, sink Sink) error {
	list, err := s.source.Candidates(ctx)
	if err != nil {
		return s.unavailable(ctx, sink, err)
	}
	if len(list) == 0 {
		return sink.SendHTML(ctx, NoCandidatesText, true)
	}
	if err := sink.SendHTML(ctx, election.RenderCandidates(list), true); err != nil {
		return err
	}

	outcome := s.PhotoOutcome()
	logger.Debug(ctx, "election.menu", "photo",
		slog.Int("candidates", len(list)),
		slog.String("photo", outcome.String()),
	)
	if outcome == PhotoMissing {
		return sink.SendHTML(ctx, PhotoMissingText, false)
	}
	return sink.SendPhoto(ctx, s.photoPath, PhotoCaption)
}

// PhotoOutcome checks the candidate photo. Anything but a regular file
// counts as missing.
func (s *Service) PhotoOutcome() PhotoOutcome {
	info, err := s.stat(s.photoPath)
	if err != nil || !info.Mode().IsRegular() {
		return PhotoMissing
	}
	return PhotoAttached
}

func (s *Service) unavailable(ctx context.Context, sink Sink, cause error) error {
	if err := sink.SendHTML(ctx, UnavailableText, true); err != nil {
		return errors.Join(cause, fmt.Errorf("reply unavailable notice: %w", err))
	}
	return cause
}

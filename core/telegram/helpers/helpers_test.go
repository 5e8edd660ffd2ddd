package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/electionbot/core/logger"
	"github.com/m3rciful/electionbot/core/telegram/sender"
	"github.com/m3rciful/electionbot/core/telegram/teletest"

	tele "gopkg.in/telebot.v4"
)

func TestBuildContextCachesMetadata(t *testing.T) {
	c := teletest.TextMessage(12, 34, "hi")
	ctx := BuildContext(c)

	assert.Equal(t, "12:34:34", logger.RIDFrom(ctx))
	assert.Equal(t, int64(34), logger.ChatIDFrom(ctx))
	assert.Equal(t, int64(34), logger.UserIDFrom(ctx))
	assert.Equal(t, 12, logger.UpdateIDFrom(ctx))
	assert.NotEmpty(t, logger.TraceIDFrom(ctx))
	assert.Equal(t, logger.TraceIDFrom(ctx), logger.TraceIDFrom(BuildContext(c)))

	ctx = WithHandler(c, "quick_count")
	assert.Equal(t, "quick_count", logger.HandlerFrom(ctx))
	cached, ok := ContextFrom(c)
	require.True(t, ok)
	assert.Equal(t, "quick_count", logger.HandlerFrom(cached))
}

func TestSendHelpersSynchronous(t *testing.T) {
	SetDispatcher(nil)
	c := teletest.TextMessage(1, 5, "x")

	require.NoError(t, SendHTML(c, "<b>hi</b>"))
	require.NoError(t, SendText(c, "plain"))
	require.NoError(t, SendPhoto(c, "cacawa.png", "caption"))

	sends := c.Sends()
	require.Len(t, sends, 3)
	opts, ok := sends[0].Opts[0].(*tele.SendOptions)
	require.True(t, ok)
	assert.Equal(t, tele.ModeHTML, opts.ParseMode)
	assert.Empty(t, sends[1].Opts)
	photo, ok := sends[2].What.(*tele.Photo)
	require.True(t, ok)
	assert.Equal(t, "caption", photo.Caption)
}

func TestSendHelpersThroughDispatcherKeepOrder(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 3})
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })

	c := teletest.TextMessage(1, 77, "Candidate")
	for i := 0; i < 20; i++ {
		require.NoError(t, SendHTML(c, "block"))
		require.NoError(t, SendPhoto(c, "cacawa.png", "photo"))
	}
	d.Close()

	sends := c.Sends()
	require.Len(t, sends, 40)
	for i, s := range sends {
		if i%2 == 0 {
			assert.Equal(t, "block", s.What, i)
		} else {
			assert.IsType(t, &tele.Photo{}, s.What, i)
		}
	}
}

func TestSendHelpersWaitForRoomInsteadOfJumpingTheQueue(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 1, QueueSize: 1, EnqueueWait: 5 * time.Second})
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })

	c := teletest.TextMessage(1, 42, "Candidate")
	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, d.Enqueue(BuildContext(c), "busy", "sendMessage", func() error {
		close(started)
		<-release
		return nil
	}))
	<-started

	require.NoError(t, SendHTML(c, "candidate list"))
	done := make(chan error, 1)
	go func() { done <- SendPhoto(c, "cacawa.png", "photo") }()

	select {
	case err := <-done:
		t.Fatalf("photo was sent while the candidate list was still queued: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, c.Sends())

	close(release)
	require.NoError(t, <-done)
	d.Close()

	sends := c.Sends()
	require.Len(t, sends, 2)
	assert.Equal(t, "candidate list", sends[0].What)
	assert.IsType(t, &tele.Photo{}, sends[1].What)
}

func TestSendHelpersReportFullQueue(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 1, QueueSize: 1, EnqueueWait: 10 * time.Millisecond})
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })

	c := teletest.TextMessage(1, 43, "Candidate")
	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, d.Enqueue(BuildContext(c), "busy", "sendMessage", func() error {
		close(started)
		<-release
		return nil
	}))
	<-started

	require.NoError(t, SendHTML(c, "candidate list"))
	assert.ErrorIs(t, SendPhoto(c, "cacawa.png", "photo"), sender.ErrQueueFull)

	close(release)
	d.Close()
	assert.Equal(t, []string{"candidate list"}, c.Texts())
}

func TestSendHelpersFallBackAfterClose(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{Workers: 1})
	d.Close()
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })

	c := teletest.TextMessage(1, 44, "x")
	require.NoError(t, SendHTML(c, "inline"))
	assert.Equal(t, []string{"inline"}, c.Texts())
}

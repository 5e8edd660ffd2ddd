package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/electionbot/core/config"
	tghelpers "github.com/m3rciful/electionbot/core/telegram/helpers"
	"github.com/m3rciful/electionbot/core/telegram/teletest"

	tele "gopkg.in/telebot.v4"
)

func counting(calls *int) tele.HandlerFunc {
	return func(tele.Context) error {
		*calls++
		return nil
	}
}

func TestRateLimitDropsBurstsPerUser(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	limited := 0
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		OnLimited: counting(&limited),
		Now:       func() time.Time { return clock },
	})
	calls := 0
	h := mw(counting(&calls))

	require.NoError(t, h(teletest.TextMessage(1, 10, "Quick Count")))
	require.NoError(t, h(teletest.TextMessage(2, 10, "Quick Count")))
	require.NoError(t, h(teletest.TextMessage(3, 11, "Candidate")))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, limited)

	clock = clock.Add(1500 * time.Millisecond)
	require.NoError(t, h(teletest.TextMessage(4, 10, "Candidate")))
	assert.Equal(t, 3, calls)
}

func TestRateLimiterForgetsIdleUsers(t *testing.T) {
	r := newRateLimiter(time.Second)
	t0 := time.Unix(1700000000, 0)
	for id := int64(1); id <= 100; id++ {
		require.True(t, r.allow(id, t0))
	}
	assert.Equal(t, 100, r.size())
	assert.False(t, r.allow(5, t0.Add(500*time.Millisecond)))

	require.True(t, r.allow(200, t0.Add(2*time.Second)))
	assert.Equal(t, 1, r.size())
	assert.True(t, r.allow(5, t0.Add(2*time.Second)))
	assert.False(t, r.allow(200, t0.Add(2500*time.Millisecond)))
}

func TestRateLimitExcludedKinds(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Hour,
		Exclude:  map[string]struct{}{coreconfig.UpdateMessage: {}},
	})
	calls := 0
	h := mw(counting(&calls))
	for i := 1; i <= 3; i++ {
		require.NoError(t, h(teletest.TextMessage(i, 10, "x")))
	}
	assert.Equal(t, 3, calls)
}

func TestAdminOnly(t *testing.T) {
	rejected := 0
	mw := AdminOnlyMiddleware(AdminOptions{AdminID: 99, OnReject: counting(&rejected)})
	calls := 0
	h := mw(counting(&calls))

	require.NoError(t, h(teletest.TextMessage(1, 99, "/status")))
	require.NoError(t, h(teletest.TextMessage(2, 5, "/status")))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, rejected)
}

func TestAdminOnlyWithoutAdminRejectsEveryone(t *testing.T) {
	calls := 0
	h := AdminOnlyMiddleware(AdminOptions{})(counting(&calls))
	require.NoError(t, h(teletest.TextMessage(1, 0, "/status")))
	assert.Zero(t, calls)
}

func TestRecoverSwallowsPanic(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	assert.NotPanics(t, func() {
		assert.NoError(t, h(teletest.TextMessage(1, 1, "x")))
	})
}

func TestLoggerMiddlewareStoresContext(t *testing.T) {
	c := teletest.TextMessage(7, 42, "hi")
	h := LoggerMiddleware(func(c tele.Context) error {
		ctx, ok := tghelpers.ContextFrom(c)
		require.True(t, ok)
		assert.NotNil(t, ctx)
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, "7:42:42", c.Get("rid"))
}

func TestMessageMetricsCountsSends(t *testing.T) {
	c := teletest.TextMessage(1, 1, "x")
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		require.NoError(t, c.Send("plain"))
		return c.Send("menu", &tele.SendOptions{ReplyMarkup: &tele.ReplyMarkup{}})
	})
	require.NoError(t, h(c))

	msgs, kb := GetCounters(c)
	assert.Equal(t, 2, msgs)
	assert.True(t, kb)
	assert.Equal(t, []string{"plain", "menu"}, c.Texts())
}

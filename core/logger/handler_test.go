package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, format logFormat) (*slog.Logger, func() string) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	read := func() string {
		if err := aw.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		return strings.TrimSpace(buf.String())
	}
	return slog.New(h), read
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	LogEvent(ctx, log.With("component", "election.menu"), slog.LevelInfo, "menu.dispatch",
		slog.String("status", "ok"),
		slog.String("intent", "show_quickcount"),
	)

	line := read()
	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=election.menu", "event=menu.dispatch", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "intent=show_quickcount"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, read := newTestLogger(t, formatJSON)
	ctx := WithTrace(WithRID(Background(), "rid-json"), "trace-1")

	LogEvent(ctx, log.With("component", "election.fetch"), slog.LevelError, "fetch.fail",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
		slog.String("err_code", "FETCH_NETWORK"),
	)

	line := read()
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"election.fetch"`, `"event":"fetch.fail"`, `"status":"fail"`, `"rid":"rid-json"`, `"trace_id":"trace-1"`, `"ts_unix_nano"`, `"err":"boom"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	rawRID := "123:456:789"
	LogEvent(WithRID(Background(), rawRID), log, slog.LevelInfo, "rid.test")

	line := read()
	if !strings.Contains(line, "rid="+CompactRID(rawRID)) {
		t.Fatalf("expected compact rid, got %s", line)
	}
	if strings.Contains(line, "rid_full=") {
		t.Fatalf("rid_full should be omitted in KV output, got %s", line)
	}
}

func TestStructuredHandlerCompactRIDJSON(t *testing.T) {
	log, read := newTestLogger(t, formatJSON)
	rawRID := "12:34:56"
	LogEvent(WithRID(Background(), rawRID), log, slog.LevelInfo, "rid.test")

	line := read()
	if !strings.Contains(line, `"rid":"`+CompactRID(rawRID)+`"`) {
		t.Fatalf("expected compact rid in JSON, got %s", line)
	}
	if !strings.Contains(line, `"rid_full":"`+rawRID+`"`) {
		t.Fatalf("expected rid_full in JSON output, got %s", line)
	}
}

func TestStructuredHandlerDurationsAndErrors(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	log.Info("fetch.done",
		slog.Duration("duration", 1500*time.Microsecond),
		slog.Any("err", errors.New("bad gateway")),
		slog.String("empty", ""),
	)
	line := read()
	for _, want := range []string{"event=fetch.done", "component=app", "duration_ms=2", `err="bad gateway"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %s", want, line)
		}
	}
	if strings.Contains(line, "empty=") {
		t.Fatalf("empty values should be pruned: %s", line)
	}
}

func TestStructuredHandlerDropsUnknownOutcome(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	log.Info("x", slog.String("outcome", "weird"), slog.String("status", "OK"))
	line := read()
	if strings.Contains(line, "outcome=") {
		t.Fatalf("unknown outcome should be dropped: %s", line)
	}
	if !strings.Contains(line, "status=ok") {
		t.Fatalf("status should be lower-cased: %s", line)
	}
}

func TestHelpersTolerateUninitializedLogger(t *testing.T) {
	prev := L
	L = nil
	defer func() { L = prev }()

	Info(Background(), "election.fetch", "noop")
	LogEvent(nil, nil, slog.LevelInfo, "noop")
	if Component("x") != nil {
		t.Fatal("Component should be nil before InitLogger")
	}
}

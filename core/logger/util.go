package logger

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Status maps an error to the status/outcome field value: "ok", "cancelled"
// when the caller went away, "fail" otherwise.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "fail"
	}
}

// Took is the rounded time elapsed since start.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds to whole milliseconds; negative durations become zero.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

// MarkLogged tags err as already written to the log by the layer returning it.
// The original error stays reachable through errors.Is and errors.As.
func MarkLogged(err error) error {
	if err == nil || Logged(err) {
		return err
	}
	return loggedError{err: err}
}

// Logged reports whether err went through MarkLogged.
func Logged(err error) bool {
	var le loggedError
	return errors.As(err, &le)
}

// SummarizeStrings joins at most limit values with ", " and reports whether
// some were left out.
func SummarizeStrings(values []string, limit int) (string, bool) {
	if limit <= 0 {
		return "", len(values) > 0
	}
	if len(values) <= limit {
		return strings.Join(values, ", "), false
	}
	return strings.Join(values[:limit], ", "), true
}

// Package bootstrap initializes shared infrastructure before a bot starts.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coreconfig "github.com/m3rciful/electionbot/core/config"
	"github.com/m3rciful/electionbot/core/logger"
)

// Check is a named startup probe. Failing checks marked Required abort
// startup, the rest are logged as warnings.
type Check struct {
	Name     string
	Required bool
	Run      func(ctx context.Context) error
}

// Options control the bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Checks     []Check
}

// Result reports what the pipeline observed.
type Result struct {
	// Warnings holds the names of non-required checks that failed.
	Warnings []string
}

// Run initializes the logger and then runs every check in order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	res := &Result{}
	for _, check := range opts.Checks {
		if check.Run == nil {
			continue
		}
		start := time.Now()
		err := check.Run(ctx)
		attrs := []slog.Attr{
			slog.String("status", logger.Status(err)),
			slog.String("check", check.Name),
			slog.Duration("duration", logger.Took(start)),
		}
		if err == nil {
			logger.Info(ctx, "app", "bootstrap.check", attrs...)
			continue
		}
		attrs = append(attrs, slog.String("err", err.Error()))
		if check.Required {
			logger.Error(ctx, "app", "bootstrap.check", attrs...)
			return nil, fmt.Errorf("bootstrap: check %s failed: %w", check.Name, err)
		}
		logger.Warn(ctx, "app", "bootstrap.check", attrs...)
		res.Warnings = append(res.Warnings, check.Name)
	}
	return res, nil
}

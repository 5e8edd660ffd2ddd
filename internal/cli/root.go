// Package cli defines the electionbot command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	corecmd "github.com/m3rciful/electionbot/core/cmd"
)

const defaultConfigPath = "config.yaml"

var flagConfig string

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "electionbot",
		Short:         "Telegram bot relaying quick count results and candidate profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default $"+corecmd.DefaultConfigEnvVar+" or "+defaultConfigPath+")")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newQuickCountCmd())
	cmd.AddCommand(newCandidatesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// previewConfigPath is like the serve lookup but an absent file is fine.
func previewConfigPath() string {
	path, err := corecmd.ResolveConfigPath(corecmd.Options{ConfigPath: flagConfig})
	if err != nil {
		return ""
	}
	return path
}

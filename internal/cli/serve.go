package cli

import (
	"github.com/spf13/cobra"

	corecmd "github.com/m3rciful/electionbot/core/cmd"
	"github.com/m3rciful/electionbot/internal/electionbot"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return corecmd.Run(corecmd.Options{
				ConfigPath:        flagConfig,
				DefaultConfigPath: defaultConfigPath,
				LoadConfig:        electionbot.LoadCarrier,
				Bootstrap:         electionbot.Bootstrap,
			})
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m3rciful/electionbot/internal/election"
	"github.com/m3rciful/electionbot/internal/electionbot"
)

func previewClient() (*election.Client, electionbot.ElectionConfig, error) {
	cfg, err := electionbot.LoadElectionConfig(previewConfigPath())
	if err != nil {
		return nil, cfg, err
	}
	return election.NewClient(cfg.ClientOptions()), cfg, nil
}

func newQuickCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quickcount",
		Short: "Fetch the quick count and print the reply the bot would send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := previewClient()
			if err != nil {
				return err
			}
			qc, err := client.QuickCount(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), election.RenderQuickCount(qc))
			return err
		},
	}
}

func newCandidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "Fetch the candidate list and print the reply the bot would send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := previewClient()
			if err != nil {
				return err
			}
			list, err := client.Candidates(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				_, err = fmt.Fprintln(out, electionbot.NoCandidatesText)
				return err
			}
			if _, err := fmt.Fprint(out, election.RenderCandidates(list)); err != nil {
				return err
			}
			photo := electionbot.NewService(electionbot.ServiceOptions{PhotoPath: cfg.CandidatePhoto}).PhotoOutcome()
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "photo %s: %s\n", cfg.CandidatePhoto, photo)
			return err
		},
	}
}

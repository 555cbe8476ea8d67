package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/meshkit/history"
)

func newGetCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the record stored under key ({} when absent)",
		Args:  cobra.ExactArgs(1),
	}
	compact := cmd.Flags().Bool("compact", false, "Print single-line JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := o.openStore(cmd)
		if err != nil {
			return err
		}
		defer history.Close(s)

		rec, err := s.Retrieve(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), rec, !*compact)
	}
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meshkit/history"
)

func newRmCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>...",
		Short: "Delete history records (absent keys are ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openStore(cmd)
			if err != nil {
				return err
			}
			defer history.Close(s)

			for _, key := range args {
				if err := s.Delete(key); err != nil {
					return fmt.Errorf("rm %q: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"key":%q}`+"\n", key)
			}
			return nil
		},
	}
}

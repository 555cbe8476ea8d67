package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meshkit/history"
)

func newKeysCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List live history keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openStore(cmd)
			if err != nil {
				return err
			}
			defer history.Close(s)

			keys, err := s.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

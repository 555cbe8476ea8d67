package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/history"
)

func newPutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> [json]",
		Short: "Store a JSON object under key",
		Long:  "Store a record. The JSON object can be a positional arg or piped via stdin.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 2 {
				raw = args[1]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				raw = string(b)
			}
			if strings.TrimSpace(raw) == "" {
				return core.InvalidArgumentf("record is required (positional arg or stdin)")
			}

			var rec core.Record
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				return core.InvalidArgumentf("record must be a JSON object: %v", err)
			}
			if rec == nil {
				return core.InvalidArgumentf("record must be a JSON object")
			}

			s, err := o.openStore(cmd)
			if err != nil {
				return err
			}
			defer history.Close(s)

			if err := s.Store(args[0], rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"key":%q}`+"\n", args[0])
			return nil
		},
	}
}

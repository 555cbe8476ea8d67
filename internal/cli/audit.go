package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/history"
)

func newAuditCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Print the FileStore audit log",
		Args:  cobra.NoArgs,
	}
	sources := cmd.Flags().StringSliceP("source", "s", nil, "Only show these sources (store, retrieve, delete)")
	limit := cmd.Flags().IntP("limit", "l", 0, "Stop after this many entries (0 = all)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := o.config(cmd)
		if err != nil {
			return err
		}
		path := cfg.LogPath
		if path == "" {
			path = history.DefaultLogPath
		}

		want := make(map[history.Source]bool, len(*sources))
		for _, s := range *sources {
			src := history.Source(strings.TrimSpace(s))
			switch src {
			case history.SourceStore, history.SourceRetrieve, history.SourceDelete:
				want[src] = true
			default:
				return core.InvalidArgumentf("unknown audit source %q", s)
			}
		}

		out := cmd.OutOrStdout()
		n := 0
		err = history.ReadAudit(path, func(e history.AuditEntry) error {
			if len(want) > 0 && !want[e.Source] {
				return nil
			}
			if *limit > 0 && n >= *limit {
				return errStop
			}
			n++
			line := map[string]any{"line": e.Line, "source": e.Source, "record": e.Record}
			if e.Key != "" {
				line["key"] = e.Key
			}
			return writeJSON(out, line, false)
		})
		if errors.Is(err, errStop) {
			return nil
		}
		return err
	}
	return cmd
}

var errStop = errors.New("stop")

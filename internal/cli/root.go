// Package cli implements the historyctl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/history"
)

type rootOptions struct {
	configPath  string
	storeType   string
	logPath     string
	dsn         string
	legacyAudit bool
}

// NewRootCmd builds the historyctl command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:   "historyctl",
		Short: "Inspect and edit meshkit history stores",
		Long: "Operate on a meshkit history store. The memory and file backends keep their\n" +
			"index in process, so only sqlite persists between invocations; the file\n" +
			"backend still appends every operation to its audit log.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "YAML history config file")
	root.PersistentFlags().StringVarP(&o.storeType, "type", "t", string(history.TypeSQLite), "Backend: memory, file or sqlite")
	root.PersistentFlags().StringVar(&o.logPath, "log-path", "", "FileStore audit log (default: "+history.DefaultLogPath+")")
	root.PersistentFlags().StringVar(&o.dsn, "dsn", "", "SQLite database path (default: "+history.DefaultSQLitePath+")")
	root.PersistentFlags().BoolVar(&o.legacyAudit, "legacy-audit", false, "Tag reads as store and skip delete lines")

	root.AddCommand(
		newKeysCmd(o),
		newGetCmd(o),
		newPutCmd(o),
		newRmCmd(o),
		newAuditCmd(o),
	)
	return root
}

// config merges the optional config file with explicitly set flags.
func (o *rootOptions) config(cmd *cobra.Command) (history.Config, error) {
	var cfg history.Config
	if o.configPath != "" {
		loaded, err := history.LoadConfig(o.configPath)
		if err != nil {
			return history.Config{}, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if o.configPath == "" || flags.Changed("type") {
		cfg.Type = history.Type(o.storeType)
	}
	if flags.Changed("log-path") {
		cfg.LogPath = o.logPath
	}
	if flags.Changed("dsn") {
		cfg.DSN = o.dsn
	}
	if flags.Changed("legacy-audit") {
		cfg.LegacyAudit = o.legacyAudit
	}
	return cfg, nil
}

func (o *rootOptions) openStore(cmd *cobra.Command) (core.HistoryStore, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, err
	}
	s, err := history.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

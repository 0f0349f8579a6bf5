package cli

import (
	"path/filepath"

	"studio/internal/repl"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run the line-based REPL frontend",
		RunE:  runREPL,
	}
	RootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	loop, err := repl.NewLoop(repl.Options{
		Session:     d.session,
		History:     d.store,
		Model:       d.cfg.Agent.Model,
		HistoryPath: filepath.Join(d.cfg.Storage.BaseDir, "repl.history"),
	})
	if err != nil {
		return err
	}
	defer loop.Close()

	return loop.Run(cmd.Context())
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mandalart-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole planner state",
		Long:  "Export the whole planner state. With --out, the stored record is written as-is to a JSON file that `import` accepts; otherwise the state is printed in --format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, _, err := loadState(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) == "" {
				return writeOut(cmd, app, map[string]any{"data": st})
			}
			raw, err := store.Encode(st)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"path": out, "years": st.Years(), "bytes": len(raw)},
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the record to this file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the planner state with an exported record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := store.Decode(raw)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("import: %s is not a planner record: %w", args[0], err))
			}
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(ctx, st); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(ctx, "state.import", store.StateKey, 0, map[string]any{"years": st.Years()}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"years": st.Years(), "language": string(st.Language)},
			})
		},
	}
}

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up or restore the store",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create <dest-dir>",
		Short: "Write the record and event log into an empty directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.Backup(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "restore <src-dir>",
		Short: "Replace the record and event log from a backup directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.store()
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := s.Restore(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	})
	return cmd
}

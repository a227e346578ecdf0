package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"backlog-cli/internal/store"
	"backlog-cli/internal/tui"
)

type App struct {
	Dir        string
	File       string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "backlog",
		Short:        "Backlog (local-first) epic/story tracker CLI + interactive UI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive UI
  backlog

  # Scriptable commands
  backlog epics list
  backlog epics create --name "Ship v1"
  backlog stories create --epic 1 --name "Write docs"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive UI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Data directory (default: $BACKLOG_DIR, else the nearest .backlog)")
	cmd.PersistentFlags().StringVar(&app.File, "file", "", "State file path; overrides --dir (a .sqlite/.db extension selects the SQLite backend)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newEpicsCmd(app))
	cmd.AddCommand(newStoriesCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runUI(app *App) error {
	s, err := loadStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func statePath(app *App) (string, error) {
	if app.File != "" {
		return app.File, nil
	}
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	return store.DBPath(dir), nil
}

// loadStore opens the state file, seeding an empty snapshot on first run so
// reads succeed. Existing-but-malformed state keeps failing loudly.
func loadStore(app *App) (*store.Store, error) {
	path, err := statePath(app)
	if err != nil {
		return nil, err
	}
	s := store.Open(path)
	if err := s.EnsureInitialized(); err != nil {
		return nil, err
	}
	return s, nil
}

// writeOut prints the strict JSON envelope every scriptable command emits.
// Anything meant for humans belongs in the interactive UI.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	return writeJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the state file (no-op when it already exists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := statePath(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Open(path).EnsureInitialized(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	}
}

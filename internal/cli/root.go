package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cbx-editor/internal/store"
	"cbx-editor/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cbx",
		Short:        "CBX email editor (terminal + web)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  cbx

  # Scriptable commands
  cbx drafts list

  # Write the current content to email_draft.html
  cbx export

  # Serve the browser editor
  cbx web --addr 127.0.0.1:3340
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CBX_DIR", ""), "Path to store dir (default: ~/.cbx/store, or storeDir from ~/.cbx/config.json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newDraftsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newWebCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := resolveStore(app)
	if err != nil {
		return err
	}
	return tui.Run(st)
}

// resolveStore picks the store dir: --dir/CBX_DIR first, then the global
// config's storeDir, then the default location.
func resolveStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		if cfg, err := store.LoadConfig(); err == nil && strings.TrimSpace(cfg.StoreDir) != "" {
			dir = strings.TrimSpace(cfg.StoreDir)
		}
	}
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	st := store.Store{Dir: dir}
	if err := st.Ensure(); err != nil {
		return store.Store{}, err
	}
	app.Dir = dir
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

package cli

import (
	"errors"
	"os"
	"strings"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/surface"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current editor content to " + editor.ExportFileName,
		Args:  cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Write email_draft.html to the working directory
  cbx export

  # Pipe the HTML to another tool
  cbx export --out -
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			session := editor.NewSession(surface.NewHost(), st)
			defer session.Shutdown()

			b, err := session.ExportHTML()
			if errors.Is(err, editor.ErrEmptyContent) {
				return writeErr(cmd, errors.New("the editor is empty; nothing to export"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			path := strings.TrimSpace(out)
			if path == "" {
				path = editor.ExportFileName
			}
			if err := os.WriteFile(path, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"path": path, "bytes": len(b)})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default: "+editor.ExportFileName+"; use - for stdout)")
	return cmd
}

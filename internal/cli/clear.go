package cli

import (
	"cbx-editor/internal/editor"
	"cbx-editor/internal/surface"

	"github.com/spf13/cobra"
)

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the editor content (saved drafts are untouched)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			session := editor.NewSession(surface.NewHost(), st)
			defer session.Shutdown()
			session.Clear()

			return writeOut(cmd, app, map[string]any{"cleared": true})
		},
	}
}

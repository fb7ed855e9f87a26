package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"cbx-editor/internal/editor"
	"cbx-editor/internal/surface"

	"github.com/spf13/cobra"
)

func newDraftsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List, save, show and delete saved drafts",
	}
	cmd.AddCommand(newDraftsListCmd(app))
	cmd.AddCommand(newDraftsSaveCmd(app))
	cmd.AddCommand(newDraftsShowCmd(app))
	cmd.AddCommand(newDraftsDeleteCmd(app))
	return cmd
}

func newDraftsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"drafts": st.LoadDrafts()})
		},
	}
}

func newDraftsSaveCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save a new draft from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Save with a name, content from a file
  cbx drafts save "Welcome email" --file welcome.html

  # Save from stdin with a generated name
  cat welcome.html | cbx drafts save
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var content []byte
			if strings.TrimSpace(file) != "" {
				content, err = os.ReadFile(file)
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			session := editor.NewSession(surface.NewHost(), st)
			defer session.Shutdown()
			session.Sync.SetExternal(string(content))

			d, err := session.SaveDraft(name)
			if errors.Is(err, editor.ErrEmptyContent) {
				return writeErr(cmd, errors.New("content is empty; refusing to save an empty draft"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			// One-shot invocation, so the last-edited slot is written here
			// instead of waiting out the autosave debounce.
			if err := st.SaveLastEdited(d.Content); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"draft": d})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read draft content from this file instead of stdin")
	return cmd
}

func newDraftsShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show one saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			for _, d := range st.LoadDrafts() {
				if d.ID == id {
					if raw {
						_, err := io.WriteString(cmd.OutOrStdout(), d.Content)
						return err
					}
					return writeOut(cmd, app, map[string]any{"draft": d})
				}
			}
			return writeErr(cmd, errors.New("draft not found: "+id))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the draft's HTML content")
	return cmd
}

func newDraftsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			drafts := st.LoadDrafts()
			kept := drafts[:0]
			found := false
			for _, d := range drafts {
				if d.ID == id {
					found = true
					continue
				}
				kept = append(kept, d)
			}
			if !found {
				return writeErr(cmd, errors.New("draft not found: "+id))
			}
			if err := st.SaveDrafts(kept); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

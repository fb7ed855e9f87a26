package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"cbx-editor/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the browser editor on a local HTTP server",
		Example: strings.TrimSpace(`
  # Serve on localhost
  cbx web --addr 127.0.0.1:3340

  # Serve a specific store dir
  cbx --dir /tmp/cbx-demo web --addr :3340
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr: listenAddr,
				Dir:  st.Dir,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			_ = writeOut(cmd, app, map[string]any{
				"addr":      actualAddr,
				"url":       url,
				"dir":       st.Dir,
				"opened":    opened,
				"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "CBX editor running at %s (dir=%s)\n", url, st.Dir)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			return http.Serve(ln, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3340", "Bind address (host:port or :port)")
	cmd.Flags().BoolVar(&open, "open", true, "Open the editor in your default browser")
	return cmd
}

// ABOUTME: The dotkit serve command: a local preview server for one DOT file with cached SVG rendering.
// ABOUTME: Uses a chi router, ulid request ids, and the render cache so repeated loads skip graphviz.
package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/2389-research/dotkit/dot"
	"github.com/2389-research/dotkit/render"
)

// previewPage is the HTML shell that embeds the rendered SVG.
const previewPage = `<!DOCTYPE html>
<html>
<head><title>dotkit preview</title></head>
<body style="margin:0;display:grid;place-items:center;min-height:100vh;background:#fafafa">
<img src="/svg" alt="graph preview">
</body>
</html>
`

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve <file.dot>",
		Short: "Serve a live preview of a DOT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]

			cfg, err := loadSettings()
			if err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Port
			}

			// Parse once up front so a broken file fails fast instead of
			// surfacing on the first page load.
			if _, err := dot.ParseFile(path); err != nil {
				return err
			}

			cache := render.NewCache(render.Source, cfg.CacheTTL)

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					reqID := ulid.Make().String()
					start := time.Now()
					next.ServeHTTP(w, req)
					logger.Debug("request", "id", reqID, "path", req.URL.Path, "elapsed", time.Since(start).Round(time.Millisecond))
				})
			})

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				fmt.Fprint(w, previewPage)
			})

			r.Get("/svg", func(w http.ResponseWriter, req *http.Request) {
				doc, err := dot.ParseFile(path)
				if err != nil {
					http.Error(w, err.Error(), http.StatusUnprocessableEntity)
					return
				}
				text, err := dot.Format(doc)
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				data, err := cache.Source(req.Context(), text, "svg")
				if err != nil {
					http.Error(w, describeRenderErr(err).Error(), http.StatusBadGateway)
					return
				}
				w.Header().Set("Content-Type", "image/svg+xml")
				w.Write(data)
			})

			addr := fmt.Sprintf(":%d", port)
			logger.Info("serving preview", "file", path, "addr", "http://localhost"+addr)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")
	return cmd
}

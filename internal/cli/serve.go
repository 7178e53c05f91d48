package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/timcondit/kintsugi/pkg/buildinfo"
	"github.com/timcondit/kintsugi/pkg/errors"
	"github.com/timcondit/kintsugi/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	dir     string
	noCache bool
}

// serveCommand creates the serve command for the scene preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve scene previews over HTTP",
		Long: `Serve rendered scene previews over HTTP.

The server watches a directory of TOML scene manifests and renders them on
request, so edits show up on the next browser refresh. Query parameters
seed, scale, and amplitude override the manifest's sketch settings, which
makes the server handy for quick parameter experiments:

  GET /scenes               list available scenes
  GET /scenes/{name}.svg    render a scene as SVG
  GET /scenes/{name}.json   render a scene as JSON
  GET /healthz              liveness check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dir = "."
			if len(args) == 1 {
				opts.dir = args[0]
			}
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the preview server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	if info, err := os.Stat(opts.dir); err != nil || !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "scene directory %s does not exist", opts.dir)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(runner, opts.dir),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return withLogger(context.Background(), c.Logger)
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving scenes from %s", StyleValue.Render(opts.dir))
	printDetail("http://localhost%s/scenes", opts.addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newRouter builds the chi router for the preview server.
func newRouter(runner *pipeline.Runner, dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	s := &server{runner: runner, dir: dir}

	r.Get("/healthz", s.handleHealth)
	r.Get("/scenes", s.handleList)
	r.Get("/scenes/{name}.svg", s.handleScene(pipeline.FormatSVG))
	r.Get("/scenes/{name}.json", s.handleScene(pipeline.FormatJSON))

	return r
}

// server holds the preview server's request handlers.
type server struct {
	runner *pipeline.Runner
	dir    string
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleList returns the scene names available under the served directory.
func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}

	scenes := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		scenes = append(scenes, strings.TrimSuffix(e.Name(), ".toml"))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"scenes": scenes})
}

// handleScene renders one scene in the given format. Sketch overrides come
// from the seed, scale, and amplitude query parameters.
func (s *server) handleScene(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
			httpError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidPath, "invalid scene name"))
			return
		}

		opts := pipeline.Options{
			ScenePath: filepath.Join(s.dir, name+".toml"),
			Formats:   []string{format},
		}
		if v := r.URL.Query().Get("seed"); v != "" {
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				httpError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidConfig, "invalid seed %q", v))
				return
			}
			opts.Seed = seed
		}
		if v := r.URL.Query().Get("scale"); v != "" {
			scale, err := strconv.ParseFloat(v, 64)
			if err != nil || scale < 0 {
				httpError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidConfig, "invalid scale %q", v))
				return
			}
			opts.NoiseScale = scale
		}
		if v := r.URL.Query().Get("amplitude"); v != "" {
			amp, err := strconv.ParseFloat(v, 64)
			if err != nil {
				httpError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidConfig, "invalid amplitude %q", v))
				return
			}
			opts.NoiseAmplitude = amp
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			loggerFromContext(r.Context()).Error("render failed", "scene", name, "err", err)
			status := http.StatusInternalServerError
			if errors.Is(err, errors.ErrCodeFileNotFound) {
				status = http.StatusNotFound
			}
			httpError(w, status, err)
			return
		}

		switch format {
		case pipeline.FormatSVG:
			w.Header().Set("Content-Type", "image/svg+xml")
		case pipeline.FormatJSON:
			w.Header().Set("Content-Type", "application/json")
		}
		_, _ = w.Write(result.Artifacts[format])
	}
}

func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": errors.UserMessage(err)})
}

package cli

import (
	"context"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"studyfortress/internal/auth"
	"studyfortress/internal/catalog"
	"studyfortress/internal/config"
	"studyfortress/internal/handlers"
	"studyfortress/internal/platform/logger"
	"studyfortress/internal/workspace"
)

const shutdownGrace = 5 * time.Second

func newServeCmd(g *globals, static fs.FS) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Example: `  # Listen on the configured address (default :8080)
  studyfortress serve

  # Listen on another port
  studyfortress serve --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				g.cfg.Addr = addr
			}
			router, err := newRouter(g.cfg, g.log, static)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), g.cfg.Addr, router, g.log)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "address to listen on")
	return cmd
}

func newRouter(cfg *config.Config, log *logger.Logger, static fs.FS) (http.Handler, error) {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	svc := auth.New(auth.Options{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Delay:  cfg.LoginDelay,
		Secure: cfg.Prod(),
	}, log)
	store := workspace.NewStore(cat, workspace.Options{
		Timing: workspace.Timing{
			OrganizeDelay:    cfg.OrganizeDelay,
			TranscribeDelay:  cfg.TranscribeDelay,
			PlaybackDuration: cfg.PlaybackDuration,
		},
	}, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.AccessLog(log))
	r.Use(middleware.Recoverer)

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(static))))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	handlers.NewAuthHandler(svc, cfg.LoginDelay, log).RegisterRoutes(r)
	handlers.NewDashboardHandler(cat, svc).RegisterRoutes(r)
	handlers.NewLabHandler(store, cat, svc, handlers.LabOptions{MaxUpload: cfg.MaxUploadBytes}, log).RegisterRoutes(r)
	return r, nil
}

// serve runs the server until ctx ends, then drains it. WriteTimeout stays
// zero so event streams are not cut off; they end with the base context.
func serve(ctx context.Context, addr string, h http.Handler, log *logger.Logger) error {
	grp, gctx := errgroup.WithContext(ctx)
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	grp.Go(func() error {
		log.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	grp.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return grp.Wait()
}

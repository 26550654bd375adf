package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jajnabi/folio/internal/launch"
	"github.com/jajnabi/folio/internal/server"
	"github.com/jajnabi/folio/internal/watch"
)

var (
	serveAddr    string
	serveNoWatch bool
	serveOpen    bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from folio.yml)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not reload when content files change")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the preview in a browser")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live preview of the site",
	Long: `Serve a live preview of the site.

Each browser session gets its own publication filter and sort order. When
content files matching server.watch_patterns change, the site is reloaded
and connected pages refresh over a websocket. Watching is disabled when
content is fetched from content.base_url.

Examples:
  folio serve
  folio serve --addr 127.0.0.1:4000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := loadSnapshot(ctx, cfg)
	if err != nil {
		exitWithError(ExitConfigError, "loading site: %v", err)
	}

	srv := server.New(snap,
		server.WithLogger(logger.Named("server")),
		server.WithAssets(assetsDir(cfg)))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	})

	if cfg.Server.Watch && !serveNoWatch && cfg.Content.BaseURL == "" {
		w, err := watch.New(cfg.Content.Root, cfg.Server.WatchPatterns,
			func(ctx context.Context, paths []string) {
				logger.Info("content changed", zap.Strings("paths", paths))
				next, err := loadSnapshot(ctx, cfg)
				if err != nil {
					logger.Error("reload failed", zap.Error(err))
					return
				}
				srv.Reload(next)
			},
			watch.WithLogger(logger.Named("watch")))
		if err != nil {
			exitWithError(ExitConfigError, "starting watcher: %v", err)
		}
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	if serveOpen {
		url := launch.ListenURL(cfg.Server.Addr)
		if err := launch.NewOpener(cfg.Browser).Open(url); err != nil {
			logger.Warn("opening browser failed", zap.String("url", url), zap.Error(err))
		}
	}

	if err := g.Wait(); err != nil {
		exitWithError(ExitError, "serving: %v", err)
	}
	return nil
}

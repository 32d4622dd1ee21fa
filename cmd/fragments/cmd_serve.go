package main

import (
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fragments"
	"github.com/goliatone/go-fragments/internal/server"
)

var (
	serveAddr string
	serveRoot string
	serveDemo bool
)

// serveCmd serves a site with per-request composition
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a site, composing .html pages on each request",
	Long: `Serves the site root over HTTP. Requests for .html pages are composed
against the request URL, so query placeholders work as in the browser; other
files are served unchanged. GET /healthz reports liveness.

Examples:
  fragments serve --root ./site --addr :8080
  fragments serve --demo`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	root := siteRoot(serveRoot)

	var site fs.FS
	if serveDemo {
		site = fragments.ExampleSiteFS()
		root = "(embedded example site)"
	} else {
		site = os.DirFS(root)
	}

	srv, err := server.New(cfg, site, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving site", zap.String("root", root), zap.String("addr", cfg.Server.Addr))
	return srv.Run(ctx)
}

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-fragments/pkg/composer"
	"github.com/goliatone/go-fragments/pkg/config"
	"github.com/goliatone/go-fragments/pkg/fragment"
	"github.com/goliatone/go-fragments/pkg/page"
)

// Server serves a site directory, composing host pages on every request.
// Requests for .html pages (and directories, through index.html) are read
// from the site, composed against the request URL and returned; everything
// else is served as a static file.
type Server struct {
	cfg        config.ServerConfig
	site       fs.FS
	composer   *composer.Composer
	logger     *zap.Logger
	httpServer *http.Server
}

// New builds a Server for site. The composer shares site as its fragment file
// system, so include and body paths resolve inside the same tree as the pages.
func New(cfg *config.Config, site fs.FS, logger *zap.Logger, options ...composer.Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if site == nil {
		return nil, errors.New("server: site file system is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []composer.Option{
		composer.WithConfig(cfg),
		composer.WithLogger(logger),
		composer.WithLoaderOptions(fragment.WithFileSystem(site)),
	}
	c, err := composer.New(append(opts, options...)...)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg.Server,
		site:     site,
		composer: c,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	static := http.FileServer(http.FS(s.site))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		name, ok := pageName(r.URL.Path)
		if !ok || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			static.ServeHTTP(w, r)
			return
		}
		s.servePage(w, r, name)
	})
	return mux
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, name string) {
	raw, err := fs.ReadFile(s.site, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("read page", zap.String("page", name), zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	p, err := page.Parse(bytes.NewReader(raw), r.URL.RequestURI())
	if err != nil {
		s.logger.Error("parse page", zap.String("page", name), zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	start := time.Now()
	report := s.composer.Compose(r.Context(), p)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		s.logger.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	s.logger.Info("page composed",
		zap.String("path", r.URL.Path),
		zap.String("code", report.Code),
		zap.Int("includes", len(report.Includes)),
		zap.Int("failed", len(report.Failed())),
		zap.Duration("elapsed", time.Since(start)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Template-Code", report.Code)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}

// pageName maps a request path to the host page it names. Directory paths
// map to their index.html.
func pageName(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if strings.HasSuffix(urlPath, "/") {
		name = path.Join(name, "index.html")
	}
	if name == "" || name == "." {
		name = "index.html"
	}
	if !strings.EqualFold(path.Ext(name), ".html") {
		return "", false
	}
	return name, true
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down", zap.Duration("timeout", timeout))
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	<-errChan
	return nil
}

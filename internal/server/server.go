package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/soar/padsynth/internal/gamepad"
	"github.com/soar/padsynth/internal/hub"
)

// Devices is the view of the gamepad registry the server needs.
type Devices interface {
	hub.DeviceLookup
	hub.DeviceLister
}

type asset struct {
	contentType string
	data        []byte
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	devices     Devices
	assets      map[string]asset
	started     time.Time
	addr        string
	logger      *slog.Logger
	httpServer  *http.Server
}

// New prepares a server. Files of frontendFS are minified once here.
func New(h *hub.Hub, b *hub.Broadcaster, devices Devices, frontendFS fs.FS, addr string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	assets, err := loadAssets(frontendFS, logger)
	if err != nil {
		return nil, fmt.Errorf("load frontend: %w", err)
	}
	s := &Server{
		hub:         h,
		broadcaster: b,
		devices:     devices,
		assets:      assets,
		started:     time.Now(),
		addr:        addr,
		logger:      logger,
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", handleWebSocket(s.hub, s.broadcaster, s.devices, s.logger))
	mux.HandleFunc("GET /api/devices", handleDevices(s.devices, s.logger))
	mux.HandleFunc("GET /", s.serveAsset)
	return mux
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown is called. It returns nil after a
// graceful shutdown, including one that happened before Serve.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// BrowseURL turns a listen address into a URL a local browser can open.
func BrowseURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}
	a, ok := s.assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	http.ServeContent(w, r, name, s.started, bytes.NewReader(a.data))
}

var jsType = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(jsType, js.Minify)
	return m
}

func loadAssets(fsys fs.FS, logger *slog.Logger) (map[string]asset, error) {
	m := newMinifier()
	assets := make(map[string]asset)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(path.Ext(p))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		mediatype, _, _ := mime.ParseMediaType(contentType)

		out, err := m.Bytes(mediatype, data)
		switch {
		case errors.Is(err, minify.ErrNotExist):
			out = data
		case err != nil:
			logger.Warn("serving asset unminified", "file", p, "error", err)
			out = data
		}
		assets[p] = asset{contentType: contentType, data: out}
		return nil
	})
	return assets, err
}

var _ Devices = (*gamepad.Registry)(nil)

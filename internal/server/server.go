// Package server hosts a session behind an HTTP widget: an embedded page
// with an upload control, command buttons and a column selector.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/KaramelBytes/csvexplore-cli/internal/display"
	"github.com/KaramelBytes/csvexplore-cli/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed web/index.html
var indexHTML []byte

// Options configures the HTTP host.
type Options struct {
	Session        session.Options
	MaxUploadBytes int64
	// Debug enables request logging.
	Debug   bool
	Version string
}

// Server serializes all requests onto one session.
type Server struct {
	opt  Options
	mu   sync.Mutex
	sess *session.Session
	buf  *display.Buffer
	echo *echo.Echo
}

// New builds the server and registers its routes.
func New(opt Options) *Server {
	if opt.MaxUploadBytes <= 0 {
		opt.MaxUploadBytes = 50 << 20
	}
	if opt.Version == "" {
		opt.Version = "dev"
	}
	buf := display.NewBuffer()
	s := &Server{
		opt:  opt,
		sess: session.New(opt.Session, buf),
		buf:  buf,
		echo: echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = ErrorHandler
	if opt.Debug {
		s.echo.Use(middleware.Logger())
	}
	s.echo.Use(middleware.Recover())
	// room for the multipart envelope around the file itself
	s.echo.Use(middleware.BodyLimit(fmt.Sprintf("%dKiB", opt.MaxUploadBytes>>10+64)))
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/", s.handleIndex)
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/columns", s.handleColumns)
	api.GET("/commands", s.handleCommands)
	api.POST("/commands/:command", s.handleCommand)
	api.GET("/output", s.handleOutput)
	api.GET("/output/image", s.handleOutputImage)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- s.echo.Start(addr) }()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

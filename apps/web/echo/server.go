package echoweb

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/route"
	"github.com/trezcool/darasa/core/session"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		Conf           *core.Config
		Logger         core.Logger
		SessionSvc     *session.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts  *Options
		app   *echo.Echo
		table route.Table

		shutdown     chan struct{}
		shutdownOnce sync.Once
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		table:    route.DefaultTable(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug

	s.registerPages()
	s.registerCallback()

	s.app.GET(route.SignOutPath, s.signOut)

	// catch-all: unrecognized paths go back to the landing page
	s.app.Any("/*", func(ctx echo.Context) error {
		return ctx.Redirect(http.StatusSeeOther, route.LandingPath)
	})
}

// signalShutdown requests a graceful stop; safe to call more than once.
func (s *server) signalShutdown() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

func (s *server) Start() {
	go func() {
		<-s.shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.Shutdown(ctx); err != nil {
			s.app.Logger.Error(err)
		}
	}()

	if err := s.app.Start(s.opts.Addr); err != nil && err != http.ErrServerClosed {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) signOut(ctx echo.Context) error {
	s.opts.SessionSvc.ClearSession()
	return ctx.Redirect(http.StatusSeeOther, route.LandingPath)
}

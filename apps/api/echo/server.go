package echoapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	"github.com/matrusri/standup/core/doubt"
	"github.com/matrusri/standup/core/report"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger
		ReportSvc      *report.Service
		DoubtSvc       *doubt.Service
		AssignmentSvc  *assignment.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1)
	registerReportAPI(v1, jwt, s.opts.ReportSvc)
	registerDoubtAPI(v1, jwt, s.opts.DoubtSvc)
	registerAssignmentAPI(v1, jwt, s.opts.AssignmentSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) signalShutdown() {
	go func() { _ = s.Stop(context.Background()) }()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+core.Conf.AppName+" API!")
}

// pathParam returns the named path param, percent-decoded. Timestamp
// keys contain spaces, which reach the router still encoded.
func pathParam(ctx echo.Context, name string) string {
	v := ctx.Param(name)
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

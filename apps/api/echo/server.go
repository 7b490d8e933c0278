package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/setting"
	"github.com/trezcool/hatari/core/student"
)

type (
	Options struct {
		Conf           *core.Config
		DisableReqLogs bool

		StudentSvc *student.Service
		AlertSvc   *alert.Service
		SettingSvc *setting.Service
		PredRepo   prediction.Repository
		Logger     core.Logger

		// SeedFunc loads the demo dataset; wired by main.
		SeedFunc func(count int) error
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
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerStudentAPI(v1, s.opts.StudentSvc, s.opts.AlertSvc)
	registerAlertAPI(v1, s.opts.AlertSvc)
	registerPredictionAPI(v1, s.opts.AlertSvc, s.opts.PredRepo)
	registerSettingAPI(v1, s.opts.SettingSvc)
	registerDashboardAPI(v1, s.opts.StudentSvc, s.opts.AlertSvc, s.opts.SeedFunc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Server.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Hatari API!")
}

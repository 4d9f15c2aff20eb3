package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/haguru/signup/config"
	"github.com/haguru/signup/internal/apiclient"
	"github.com/haguru/signup/internal/interfaces"
	clientMetrics "github.com/haguru/signup/internal/metrics"
	"github.com/haguru/signup/internal/middleware"
	"github.com/haguru/signup/internal/routes"
	"github.com/haguru/signup/internal/server"
	"github.com/haguru/signup/internal/session"
	"github.com/haguru/signup/internal/signuppage"
	"github.com/haguru/signup/pkg/metrics"
	"github.com/haguru/signup/pkg/zerolog"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests on exit.
var ShutdownTimeout = 10 * time.Second

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server  interfaces.Server
	Config  *config.ServiceConfig
	Logger  interfaces.Logger
	Metrics interfaces.Metrics
	Pages   *session.Store[*signuppage.Page]
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)
	app.Metrics = app.initializeMetrics()

	client := apiclient.NewClient(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(logger),
		apiclient.WithMetrics(clientMetrics.NewClientMetrics(cfg.ServiceName, app.Metrics.GetRegistry())),
	)

	app.Pages = session.NewStore(func() *signuppage.Page {
		return signuppage.New(client,
			signuppage.WithLogger(logger),
			signuppage.WithMetrics(app.Metrics),
			signuppage.WithEndpoints(signuppage.Endpoints{
				Fragment: routes.FragmentRoute,
				Input:    routes.InputRoute,
				Submit:   routes.SubmitRoute,
				Script:   signuppage.DefaultEndpoints.Script,
			}),
		)
	}, cfg.Session.TTL, session.WithLogger(logger))

	if err := app.initializeRoutes(); err != nil {
		return nil, err
	}

	return app, nil
}

// LoadConfig reads the configuration at configPath and validates it.
func LoadConfig(configPath string) (*config.ServiceConfig, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		var errs structValidator.ValidationErrors
		if errors.As(err, &errs) {
			return nil, fmt.Errorf("validation error: %s", errs)
		}
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return cfg, nil
}

// Run serves until SIGINT or SIGTERM, then shuts the server down gracefully.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.run(ctx)
}

func (app *App) run(ctx context.Context) error {
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go app.Pages.Run(sweepCtx, app.Config.Session.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(signuppage.SubmissionsTotal, signuppage.SubmissionsTotalHelp)
	appMetrics.RegisterCounter(signuppage.SubmitSuccessTotal, signuppage.SubmitSuccessTotalHelp)
	appMetrics.RegisterCounter(signuppage.SubmitFailedTotal, signuppage.SubmitFailedTotalHelp)
	appMetrics.RegisterCounterVec(
		signuppage.ValidationErrorsTotal,
		signuppage.ValidationErrorsTotalHelp,
		[]string{signuppage.ValidationErrorsFieldLabel})
	appMetrics.RegisterGauge(signuppage.SubmissionsInFlight, signuppage.SubmissionsInFlightHelp)
	appMetrics.RegisterHistogram(
		signuppage.SubmitDurationSeconds,
		signuppage.SubmitDurationSecondsHelp,
		signuppage.SubmitDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.SubmitRateLimitedTotal, routes.SubmitRateLimitedTotalHelp)
	appMetrics.RegisterCounter(routes.SessionsMountedTotal, routes.SessionsMountedTotalHelp)

	return appMetrics
}

func (app *App) initializeRoutes() error {
	route := routes.NewRoute(app.Metrics, app.Logger, app.Pages)

	metricsHandler := promhttp.HandlerFor(
		app.Metrics.GetRegistry(),
		promhttp.HandlerOpts{})
	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRoute)

	if err := app.Server.Handle(routes.MetricsRoute, tracedMetricsHandler); err != nil {
		return fmt.Errorf("failed to add metrics route: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(app.Config.RateLimit.RequestsPerSecond), app.Config.RateLimit.Burst)
	limit := middleware.RateLimitMiddleware(limiter, app.Logger, func() {
		app.Metrics.IncCounter(routes.SubmitRateLimitedTotal)
	})

	handlers := []struct {
		route   string
		handler http.Handler
	}{
		{routes.IndexRoute, http.HandlerFunc(route.Index)},
		{routes.FragmentRoute, http.HandlerFunc(route.Fragment)},
		{routes.InputRoute, http.HandlerFunc(route.Input)},
		{routes.SubmitRoute, limit(http.HandlerFunc(route.Submit))},
	}
	for _, h := range handlers {
		if err := app.Server.Handle(h.route, h.handler); err != nil {
			return fmt.Errorf("failed to add route %s: %w", h.route, err)
		}
	}

	return nil
}

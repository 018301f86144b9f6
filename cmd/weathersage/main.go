// Command weathersage serves the Weather Sage site: an hourly, LLM-written
// reading of the Met Office forecast.
package main

import (
	"context"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/weathersage/sage"
	"github.com/weathersage/sage/app/handlers"
	"github.com/weathersage/sage/middlewares"
	"github.com/weathersage/sage/pkg/cache"
	"github.com/weathersage/sage/pkg/forecast"
	"github.com/weathersage/sage/pkg/logger"
	"github.com/weathersage/sage/pkg/query"
	"github.com/weathersage/sage/pkg/redis"
	pkgsage "github.com/weathersage/sage/pkg/sage"
	"github.com/weathersage/sage/pkg/shell"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logger.New().Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Log, middlewares.RequestIDExtractor())

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	loc, err := cfg.location()
	if err != nil {
		return err
	}

	source, err := newSource(cfg.Forecast, log)
	if err != nil {
		return err
	}

	svcOpts := []pkgsage.ServiceOption{
		pkgsage.WithLogger(log),
		pkgsage.WithLocation(loc),
	}
	var (
		healthOpts []sage.HealthOption
		closeRedis func(context.Context) error
	)
	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, pkgsage.WithCache(
			cache.NewRedis[pkgsage.Summary](client, nil, cache.WithPrefix("weathersage:summary")),
		))
		healthOpts = append(healthOpts, sage.WithReadinessCheck("redis", redis.Healthcheck(client)))
		closeRedis = redis.Shutdown(client)
	}

	svc := pkgsage.NewService(source, pkgsage.NewOpenAI(cfg.OpenAI), svcOpts...)

	router := query.NewRouter(query.WithLogger(log))
	svc.Register(router)
	link := query.LocalLink(router)

	// Font and stylesheet registration happen once, before serving.
	sh := shell.New(
		shell.WithProvider(query.NewProvider(query.WithLink(link))),
		shell.WithScript(cfg.HTMXScript),
	)
	if err := sh.Init(); err != nil {
		return err
	}

	opts := []sage.Option{
		sage.WithLogger(log),
		sage.WithHTTPMiddleware(query.Middleware(link)),
		sage.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
		),
		sage.WithLayout(sh.Layout),
		sage.WithStaticFiles("/static/", shell.Assets(), "assets"),
		sage.WithHandlers(
			handlers.NewPagesHandler(handlers.WithSummaryTimeout(cfg.SummaryTimeout)),
			handlers.NewAPIHandler(router),
		),
		sage.WithErrorHandler(handlers.HandleError),
		sage.WithNotFoundHandler(handlers.HandleNotFound),
		sage.WithMethodNotAllowedHandler(handlers.HandleMethodNotAllowed),
		sage.WithHealthChecks(healthOpts...),
	}

	if !cfg.Warmer.Disabled {
		warmerOpts := []pkgsage.WarmerOption{pkgsage.WithWarmerLogger(log)}
		if cfg.Warmer.OnStart {
			warmerOpts = append(warmerOpts, pkgsage.WithWarmOnStart())
		}
		warmer, err := pkgsage.NewWarmer(svc, cfg.Warmer.Schedule, warmerOpts...)
		if err != nil {
			return err
		}
		opts = append(opts,
			sage.WithStartupHook(warmer.Start),
			sage.WithShutdownHook(warmer.Stop),
		)
	}

	// Shutdown hooks run in registration order.
	opts = append(opts,
		sage.WithShutdownHook(svc.Close),
		sage.WithShutdownHook(closeRedis),
		sage.WithShutdownHook(logger.SentryFlush()),
	)

	return sage.New(opts...).Run(cfg.Addr,
		sage.Logger(log),
		sage.ShutdownTimeout(cfg.ShutdownTimeout),
		sage.WriteTimeout(cfg.WriteTimeout),
	)
}

func newSource(cfg ForecastConfig, log *slog.Logger) (forecast.Source, error) {
	if cfg.Sample {
		log.Warn("serving the bundled sample forecast")
		return forecast.Sample()
	}
	return forecast.NewClient(cfg.DataURL, cfg.APIKey, forecast.WithLogger(log)), nil
}

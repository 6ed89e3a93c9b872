// Command storefront-demo exercises the storefront client against a
// running backend: it logs in, lists the catalog, runs a cached search
// twice, and serves the client's Prometheus metrics until interrupted.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	storefront "github.com/shoply/storefront"
	promexport "github.com/shoply/storefront/metrics/export/prometheus"
)

type demoConfig struct {
	BaseURL     string `env:"STOREFRONT_BASE_URL, default=http://localhost:8080"`
	Email       string `env:"STOREFRONT_EMAIL"`
	Password    string `env:"STOREFRONT_PASSWORD"`
	RedisAddr   string `env:"STOREFRONT_REDIS_ADDR"`
	MetricsAddr string `env:"STOREFRONT_METRICS_ADDR, default=:9091"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
}

func main() {
	_ = godotenv.Load()

	var cfg demoConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	builder := storefront.New().
		WithBaseURL(cfg.BaseURL).
		WithLogger(log).
		WithMetricsEnabled(true).
		WithNavigator(storefront.NavigatorFunc(func(route storefront.Route) {
			log.Info().Str("route", string(route)).Msg("navigate")
		})).
		WithNotifier(storefront.NotifierFunc(func(level storefront.NoticeLevel, msg string) {
			log.Info().Str("level", level.String()).Msg(msg)
		}))

	if cfg.RedisAddr != "" {
		builder = builder.WithRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	client, err := builder.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("client build failed")
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Email != "" {
		identity, err := client.Login(ctx, storefront.Credentials{
			Email:    cfg.Email,
			Password: cfg.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		log.Info().Int64("user_id", identity.UserID).Str("role", identity.Role.String()).Msg("logged in")
		client.StartSessionWatch(ctx)
	}

	products, err := client.Products(ctx)
	if err != nil {
		log.Error().Err(err).Msg("product list failed")
	} else {
		log.Info().Int("count", len(products)).Msg("catalog loaded")
	}

	// Second search answers from the cache.
	for i := 0; i < 2; i++ {
		results, err := client.SearchProducts(ctx, "shoes")
		if err != nil {
			log.Error().Err(err).Msg("search failed")
			break
		}
		log.Info().Int("results", len(results)).Int("cached", client.CacheSize()).Msg("search done")
	}

	exporter := promexport.NewPrometheusExporter(client)
	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.Handler())
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("metrics server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"moviedex/contact"
	"moviedex/httpserver"
	"moviedex/mongodb"
	"moviedex/movie"
	"moviedex/pkg/config"
	"moviedex/pkg/logger"
	"moviedex/pkg/sentry"
	"moviedex/postgres"
	"moviedex/redis"
	"moviedex/resend"
	"moviedex/testimonial"
	"moviedex/tmdb"
	"moviedex/web3forms"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot build logger:", err)
		os.Exit(1)
	}

	err = run(cfg, log)
	if err != nil {
		log.Errorw("server stopped with error", "error", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup happens before main exits.
func run(cfg *config.Config, log *zap.SugaredLogger) error {
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("cannot init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpserver.Default(cfg)
	server.Logger = log

	repo, closeStore, err := openTestimonialStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("cannot open %s testimonial store: %w", cfg.DB.Driver, err)
	}
	defer closeStore()
	server.TestimonialService = testimonial.NewUsecase(repo)

	provider, err := movieProvider(ctx, cfg, server, log)
	if err != nil {
		return fmt.Errorf("cannot set up movie provider: %w", err)
	}
	server.MovieService = movie.NewUsecase(provider)

	relay, err := contactRelay(cfg, log)
	if err != nil {
		return fmt.Errorf("cannot set up contact relay: %w", err)
	}
	server.ContactService = contact.NewUsecase(relay)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	}
}

func openTestimonialStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (testimonial.Repository, func(), error) {
	switch cfg.DB.Driver {
	case "mongodb":
		client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warnw("cannot disconnect from mongodb", "error", err)
			}
		}

		repo := mongodb.NewTestimonialRepository(db, cfg.Mongo.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		log.Infow("using mongodb testimonial store", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)
		return repo, closeFn, nil
	case "postgres":
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Infow("using postgres testimonial store", "database", cfg.DB.Name)
		return postgres.NewTestimonialRepository(db), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DB.Driver)
}

func movieProvider(ctx context.Context, cfg *config.Config, server *httpserver.Server, log *zap.SugaredLogger) (movie.Provider, error) {
	if cfg.TMDB.APIKey == "" {
		log.Warnw("TMDB_API_KEY is not set, movie routes will answer 501")
	}

	var provider movie.Provider = tmdb.New(tmdb.Options{
		APIKey:    cfg.TMDB.APIKey,
		BaseURL:   cfg.TMDB.BaseURL,
		Language:  cfg.TMDB.Language,
		RateLimit: cfg.TMDB.RateLimit,
		Recorder:  server.Metrics,
	})
	if cfg.Redis.Addr == "" {
		return provider, nil
	}

	rdb, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
	log.Infow("caching movie provider responses", "addr", cfg.Redis.Addr, "ttl", ttl)
	return redis.NewMovieCache(provider, rdb, ttl, log), nil
}

func contactRelay(cfg *config.Config, log *zap.SugaredLogger) (contact.Relay, error) {
	switch cfg.Contact.Relay {
	case "web3forms":
		return web3forms.New(cfg.Contact.Web3FormsKey, cfg.Contact.Web3FormsURL, nil), nil
	case "resend":
		return resend.New(resend.Options{
			APIKey: cfg.Contact.ResendAPIKey,
			From:   cfg.Contact.ResendFrom,
			To:     cfg.Contact.ResendTo,
			Logger: log,
		}), nil
	}
	return nil, fmt.Errorf("unknown CONTACT_RELAY %q", cfg.Contact.Relay)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"moviedex/mongodb"
	"moviedex/pkg/config"
	"moviedex/pkg/logger"
	"moviedex/postgres"
	"moviedex/testimonial"
	"os"

	"go.uber.org/zap"
)

func main() {
	var (
		csvPath string
		limit   int
		dryRun  bool
	)

	flag.StringVar(&csvPath, "csv", "testimonials.csv", "Path to a CSV file with a name,avatar,role,feedback header")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate rows without writing them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot build logger:", err)
		os.Exit(1)
	}
	err = run(cfg, log, csvPath, limit, dryRun)
	if err != nil {
		log.Errorw("import failed", "error", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger, csvPath string, limit int, dryRun bool) error {
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("cannot open csv: %w", err)
	}
	defer file.Close()

	ctx := context.Background()
	var svc testimonial.Service = testimonial.NewUsecase(discardRepository{})
	if !dryRun {
		repo, closeFn, err := openRepository(ctx, cfg)
		if err != nil {
			return fmt.Errorf("cannot open %s testimonial store: %w", cfg.DB.Driver, err)
		}
		defer closeFn()
		svc = testimonial.NewUsecase(repo)
	}

	imp := &importer{svc: svc, log: log, limit: limit}
	res, err := imp.Import(ctx, file)
	if err != nil {
		return fmt.Errorf("imported %d rows before failing: %w", res.Imported, err)
	}

	log.Infow("import completed", "imported", res.Imported, "skipped", res.Skipped, "dry_run", dryRun)
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config) (testimonial.Repository, func(), error) {
	switch cfg.DB.Driver {
	case "mongodb":
		client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewTestimonialRepository(db, cfg.Mongo.Collection), closeFn, nil
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
		return postgres.NewTestimonialRepository(db), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DB.Driver)
}

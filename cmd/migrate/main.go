package main

import (
	"flag"
	"fmt"
	"moviedex/pkg/config"
	"moviedex/pkg/logger"
	"moviedex/postgres"
	"os"
	"strconv"

	"go.uber.org/zap"
)

func main() {
	var (
		dir  string
		down bool
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration instead of applying")
	flag.Parse()

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

	err = run(cfg, log, dir, down)
	if err != nil {
		log.Errorw("migration failed", "error", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger, dir string, down bool) error {
	if cfg.DB.Driver != "postgres" {
		log.Infow("nothing to migrate", "driver", cfg.DB.Driver)
		return nil
	}

	db, err := postgres.OpenSQL(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return fmt.Errorf("cannot connect to db: %w", err)
	}
	defer db.Close()

	total, err := postgres.Migrate(db, dir, down)
	if err != nil {
		return fmt.Errorf("cannot execute migration: %w", err)
	}

	log.Infow("applied migrations", "total", total, "down", down)
	return nil
}

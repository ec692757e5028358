package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/blackcloro/steam-payments/internal/config"
	"github.com/blackcloro/steam-payments/pkg/logger"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-source url] up|down|version\n", os.Args[0])
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if cfg.DB.URL == "" {
		logger.Fatal("Database configuration missing", nil)
	}

	m, err := migrate.New(*source, cfg.DB.URL)
	if err != nil {
		logger.Fatal("Failed to initialise migrations", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("Error while closing migration", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	switch flag.Arg(0) {
	case "up", "":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("Failed to read migration version", verr)
		}
		logger.Info("Migration version", "version", version, "dirty", dirty)
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Migration failed", err)
	}
	logger.Info("Migration done", "command", flag.Arg(0))
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/puntu/internal/adapters/spatialite"
	"github.com/samirrijal/puntu/internal/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up>")
	}

	cfg, err := config.Load("puntu-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	switch os.Args[1] {
	case "up":
		switch cfg.Database.Driver {
		case config.DriverPostgres:
			migratePostgres(cfg)
		case config.DriverSpatiaLite:
			migrateSpatiaLite(cfg)
		default:
			log.Fatalf("unknown driver: %s", cfg.Database.Driver)
		}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func migratePostgres(cfg *config.Config) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	files := []string{
		"migrations/postgres/001_init.sql",
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		if _, err := pool.Exec(ctx, string(data)); err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}

func migrateSpatiaLite(cfg *config.Config) {
	db, err := spatialite.Open(spatialite.Config{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	files := []string{
		"migrations/spatialite/001_init.sql",
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		if _, err := db.Exec(string(data)); err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}

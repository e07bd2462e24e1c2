package main

import (
	"context"
	"flag"
	"log"

	"github.com/humanbelnik/catalog/internal/config"
	infra_pg_init "github.com/humanbelnik/catalog/internal/infra/postgres/init"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Usage: migrate [-config path] <up|down|status|version|redo|reset> [args]
func main() {
	cfg := config.Load()

	command := "up"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	db, err := sqlx.Connect("postgres", infra_pg_init.DSN(cfg.Postgres))
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if err := infra_pg_init.Migrate(context.Background(), db.DB, command, args...); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Printf("goose %s done", command)
}

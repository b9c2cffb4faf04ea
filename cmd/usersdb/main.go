// Command usersdb creates and inspects the users schema. The service itself
// never creates tables; run "usersdb up" once before starting it.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"usersvc/internal/config"
	"usersvc/internal/repos"
)

const usage = "usage: usersdb [up|down|status]"

func main() {
	command := repos.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	switch command {
	case repos.MigrateUp, repos.MigrateDown, repos.MigrateStatus:
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repos.Migrate(context.Background(), db, command); err != nil {
		log.Fatalf("[migrate] %s: %v", command, err)
	}
}

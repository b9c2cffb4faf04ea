package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"usersvc/internal/config"
	"usersvc/internal/http/handlers"
	applog "usersvc/internal/log"
	"usersvc/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	logFile := applog.Setup(cfg.LogFile)
	defer logFile.Close()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		log.Fatal(err)
	}
	app := handlers.NewApp(cfg, deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", cfg.Addr())
		errc <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Printf("[server] stopped: %v", err)
		}
	case <-ctx.Done():
		log.Printf("[server] shutting down")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}
}

package main

import (
	"log"

	"docproc-backend/internal/bootstrap"
	"docproc-backend/internal/shared/config"
	"docproc-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

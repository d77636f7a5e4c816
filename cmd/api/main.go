package main

import (
	"log"

	"cv-optimizer-backend/internal/shared/config"
	"cv-optimizer-backend/internal/shared/server"
	"cv-optimizer-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := telemetry.Init(cfg.Env != "dev", cfg.Env == "dev"); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}

	r, err := server.NewRouter(cfg)
	if err != nil {
		log.Fatalf("building router: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"log"
	"os"

	"FinChart/internal/di"
	"FinChart/pkg/config"
)

func main() {
	// Load config (defaults, optional FINCHART_CONFIG file, FINCHART_* env)
	cfg, err := config.LoadWithEnv()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until quit or signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"YieldAdvisor/internal/di"
	"YieldAdvisor/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s port=%d llm=%s oracle_cache=%s events=%v",
		cfg.Environment, cfg.Server.Port, cfg.LLM.Provider, cfg.Oracle.Cache.Backend, cfg.Events.Enabled)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Run(ctx)
	stop()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

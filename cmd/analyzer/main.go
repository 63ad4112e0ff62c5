package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"SP500Insight/internal/config"
	"SP500Insight/internal/dataset"
	"SP500Insight/internal/engine"
	"SP500Insight/internal/recorder"
	"SP500Insight/internal/report"
	"SP500Insight/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SP500Insight starting...")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init dataset source: cached files first, provider fetch on miss.
	cache := dataset.NewCacheSource(cfg.Dataset.CacheDir, cfg.Dataset.StocksFile, cfg.Dataset.CompaniesFile)
	var fetch *dataset.FetchSource
	if cfg.Provider.BaseURL != "" {
		provider := dataset.NewHTTPProvider(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Slug, cfg.Proxy)
		fetch = dataset.NewFetchSource(provider, cfg.Dataset.CacheDir, cfg.Dataset.StocksFile, cfg.Dataset.CompaniesFile)
	}
	src := dataset.NewStore(cache, fetch)
	log.Printf("[INFO] dataset source: %s", src.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(cfg.Analysis.Workers)
	writer := report.NewWriter(cfg.Output.Dir)
	sched := scheduler.NewScheduler(ctx, src, eng, writer, rec, cfg)

	if err := sched.RunOnce(); err != nil {
		log.Fatalf("[FATAL] analysis run: %v", err)
	}

	// Without a refresh schedule this is a one-shot batch job.
	if cfg.Schedule.RefreshCron == "" {
		log.Println("[INFO] no refresh schedule configured, exiting")
		return
	}

	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] SP500Insight is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SP500Insight stopped")
}

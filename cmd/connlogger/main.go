package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connlogger/internal/config"
	"connlogger/internal/logging"
	"connlogger/internal/monitor"
	"connlogger/internal/ping"
	"connlogger/internal/report"
	"connlogger/internal/retention"
	"connlogger/internal/store"
	"connlogger/internal/web"
)

func main() {
	opts := config.ParseFlags()

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, opts.JSONLogs)
	log := logging.Component("main")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	opts.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if opts.ReportDir != "" {
		gen := report.NewGenerator(st)
		if err := gen.GenerateReport(opts.ReportDir, opts.ReportHours); err != nil {
			log.Error("report generation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	engine := retention.New(st, cfg.RetentionDays)
	mon := monitor.New(cfg, st, ping.New(), engine)
	server := web.New(st, cfg.Dashboard.Port, cfg.Dashboard.Title)

	if err := mon.Start(); err != nil {
		log.Error("failed to start monitor", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := server.Run(); err != nil {
			log.Error("web server failed", "error", err)
		}
	}()

	log.Info("connection logger running",
		"hosts", len(cfg.Hosts),
		"interval", cfg.Interval(),
		"dashboard_port", cfg.Dashboard.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	mon.Stop()
	mon.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("web server shutdown error", "error", err)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/dto"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/fecparse"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/platform/config"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <fec-file> [<fec-file> ...]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	files := make([]domain.SourceFile, 0, len(os.Args)-1)
	for _, path := range os.Args[1:] {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Failed to read input file", slog.String("file", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
		files = append(files, domain.SourceFile{Name: filepath.Base(path), Content: content})
	}

	rules, err := loadRules(cfg.RulesPath)
	if err != nil {
		logger.Error("Failed to load classification rules", slog.String("path", cfg.RulesPath), slog.String("error", err.Error()))
		os.Exit(1)
	}

	analyzer := services.NewAnalysisService(
		services.WithLogger(logger),
		services.WithParser(fecparse.NewParser(
			fecparse.WithErrorThreshold(cfg.RowErrorThreshold),
			fecparse.WithTolerance(cfg.BalanceTolerance),
		)),
		services.WithMapper(mapper.New(rules)),
		services.WithKPICalculator(services.NewKPICalculator(
			services.WithVATRate(cfg.VATRate),
		)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := analyzer.Analyze(ctx, files)
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, w := range bundle.Warnings {
		logger.Warn("ledger warning",
			slog.String("kind", string(w.Kind)),
			slog.Int("year", w.Year),
			slog.String("message", w.Message),
		)
	}

	synthesis := dto.ToSynthesisResponse(bundle)
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(synthesis); err != nil {
		logger.Error("Failed to encode synthesis", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadRules reads a YAML rule table when a path is configured; an empty path
// keeps the default PCG mapping.
func loadRules(path string) ([]mapper.Rule, error) {
	if path == "" {
		return nil, nil
	}
	return mapper.LoadRules(path)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

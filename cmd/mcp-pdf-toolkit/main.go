package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/a3tai/mcp-pdf-toolkit/internal/config"
	"github.com/a3tai/mcp-pdf-toolkit/internal/delivery"
	"github.com/a3tai/mcp-pdf-toolkit/internal/logger"
	"github.com/a3tai/mcp-pdf-toolkit/internal/mcp"
	"github.com/a3tai/mcp-pdf-toolkit/internal/metrics"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// loggerOptions maps the configuration onto logger options. Logs always
// go to stderr; in stdio mode stdout carries the protocol.
func loggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:        cfg.LogLevel,
		Pretty:       cfg.LogPretty,
		File:         cfg.LogFile,
		Compress:     true,
		Console:      os.Stderr,
		AxiomAPIKey:  cfg.AxiomToken,
		AxiomOrgID:   cfg.AxiomOrgID,
		AxiomDataset: cfg.AxiomDataset,
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.MaxGeneratedPages, cfg.InputDirectory)
	if err != nil {
		return fmt.Errorf("failed to create PDF service: %w", err)
	}

	sink, err := delivery.NewSink(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s sink: %w", cfg.Sink, err)
	}

	server, err := mcp.NewServer(cfg, pdfService, sink)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return server.Run(ctx)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion(os.Stdout)
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	if err := logger.Init(loggerOptions(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	metrics.Init()

	log.Debug().Str("config", cfg.String()).Msg("starting with configuration")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		logger.Close()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP PDF Toolkit\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}

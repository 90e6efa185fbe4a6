// Package main is the Erabu CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/cli"
	"github.com/hyperjump/erabu/internal/config"
	"github.com/hyperjump/erabu/internal/dataset"
	"github.com/hyperjump/erabu/internal/embedding"
	"github.com/hyperjump/erabu/internal/export"
	"github.com/hyperjump/erabu/internal/match"
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/server"
	"github.com/hyperjump/erabu/internal/watcher"
	"github.com/hyperjump/erabu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/erabu/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "erabu server" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyEnvOverrides lets a .env file (or the environment) override the model
// location without touching the config file.
func applyEnvOverrides(cfg *config.Config) {
	if p := os.Getenv("ERABU_MODEL_PATH"); p != "" {
		cfg.Embedding.ModelPath = p
	}
	if p := os.Getenv("ERABU_DATASET_PATH"); p != "" {
		cfg.Dataset.Path = p
	}
}

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "match":
		runMatch()
	case "config":
		runConfig()
	case "version", "--version", "-v":
		fmt.Printf("erabu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (uploads, match triggers, cache reuse)")
	datasetPath := fs.String("dataset", "", "dataset file to preload (overrides config)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyEnvOverrides(cfg)
	if *datasetPath != "" {
		cfg.Dataset.Path = *datasetPath
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	embedder := initializeEmbedder(cfg, logger)
	defer embedder.Close()

	engine := match.NewEngine(embedder, cfg.Embedding.QueryPrefix, logger)
	srv := server.NewServer(engine, cfg, logger)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Dataset.Path != "" {
		if err := loadDatasetInto(srv, cfg.Dataset.Path); err != nil {
			logger.Fatal("Failed to preload dataset", zap.String("path", cfg.Dataset.Path), zap.Error(err))
		}
		if cfg.Dataset.Watch {
			watchSvc := watcher.NewWatcher(cfg.Dataset.Path, func(path string) {
				if err := loadDatasetInto(srv, path); err != nil {
					logger.Warn("dataset reload failed", zap.String("path", path), zap.Error(err))
				}
			}, logger)
			if err := watchSvc.Start(watchCtx); err != nil {
				logger.Fatal("Failed to start dataset watcher", zap.Error(err))
			}
			defer watchSvc.Stop()
		}
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// loadDatasetInto reads and parses the file at path and installs it as the
// server's active dataset.
func loadDatasetInto(srv *server.Server, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(filepath.Base(path), content)
	if err != nil {
		return err
	}
	srv.SetDataset(ds, uuid.NewString())
	return nil
}

func printMatchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: erabu match -file <dataset> [flags] <campaign brief>\n\n")
	fmt.Fprintf(fs.Output(), "Brief is all remaining arguments joined by spaces. Multi-word briefs work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  erabu match -file creators.csv looking for beauty and skincare influencers
  erabu match -file creators.xlsx -niche Fashion -top 5 "summer lookbook campaign"
  erabu match -file creators.csv -o top_creators.csv launch campaign for a fitness app
`)
}

// buildBrief joins all positional args with spaces so multi-word briefs work
// the same with or without shell quoting.
func buildBrief(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// matchArgsReorder moves any flags (and their values) that appear after the
// brief to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func matchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// exportFormatForPath picks csv or xlsx from the output file extension.
func exportFormatForPath(path string) (export.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return export.FormatCSV, nil
	case ".xlsx":
		return export.FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export extension %q; use .csv or .xlsx", filepath.Ext(path))
	}
}

func runMatch() {
	matchArgs := matchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("match", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	filePath := fs.String("file", "", "dataset file (.csv or .xlsx)")
	niche := fs.String("niche", models.FilterAll, "filter by exact niche")
	location := fs.String("location", models.FilterAll, "filter by exact location")
	topK := fs.Int("top", 0, "number of creators to return (0 = config default)")
	outputFormat := fs.String("output", "text", "output format: text (creator cards) or json (parseable)")
	exportPath := fs.String("o", "", "also write ranked results to this file (.csv or .xlsx)")
	fs.Usage = func() { printMatchUsage(fs) }
	_ = fs.Parse(matchArgs)

	if *filePath == "" || fs.NArg() < 1 {
		printMatchUsage(fs)
		os.Exit(1)
	}
	brief := buildBrief(fs.Args())
	if brief == "" {
		printMatchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "text":
	case "json":
		format = cli.OutputJSON
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyEnvOverrides(cfg)
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	content, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read dataset: %v\n", err)
		os.Exit(1)
	}
	ds, err := dataset.Load(filepath.Base(*filePath), content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	embedder := initializeEmbedder(cfg, logger)
	defer embedder.Close()
	engine := match.NewEngine(embedder, cfg.Embedding.QueryPrefix, logger)

	query := &models.MatchQuery{
		Brief:    brief,
		Niche:    *niche,
		Location: *location,
		TopK:     *topK,
	}
	if query.TopK <= 0 {
		query.TopK = cfg.Match.DefaultTopK
	}
	if query.TopK > cfg.Match.MaxTopK {
		query.TopK = cfg.Match.MaxTopK
	}

	response, err := engine.Match(context.Background(), ds, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Match failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteMatchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}

	if *exportPath != "" {
		exportFormat, err := exportFormatForPath(*exportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		out, err := os.Create(*exportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create export file: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := export.Write(out, ds, response.Results, exportFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d creators to %s\n", len(response.Results), *exportPath)
	}
}

func runConfig() {
	if len(os.Args) < 3 || os.Args[2] != "init" {
		fmt.Println("Usage: erabu config init [flags]")
		os.Exit(1)
	}
	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path to write")
	force := fs.Bool("force", false, "overwrite an existing config file")
	_ = fs.Parse(os.Args[3:])

	if err := initConfigFile(*configPath, *force); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", *configPath)
}

// initConfigFile writes a config file populated with defaults. An existing
// file is only replaced when force is set.
func initConfigFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return config.Save(path, cfg)
}

// initializeEmbedder prefers the ONNX model and falls back to the mock
// embedder when the model cannot be loaded (missing file, no cgo).
func initializeEmbedder(cfg *config.Config, logger *zap.Logger) embedding.Embedder {
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Warn("ONNX model unavailable, using mock embedder",
			zap.String("model_path", cfg.Embedding.ModelPath),
			zap.Error(err))
		return embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	}
	return onnxEmbedder
}

func printUsage() {
	fmt.Println(`erabu - Creator matching for campaign briefs

Usage:
  erabu server [flags]                  Start the HTTP server
  erabu match [flags] <campaign brief>  Rank creators against a brief
  erabu config init [flags]             Write a default config file
  erabu version                         Show version
  erabu help                            Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/erabu/config.yaml)
  --debug            Enable debug logging
  --dataset string   Dataset file to preload (overrides config)

Match Flags:
  --file string      Dataset file, .csv or .xlsx (required)
  --niche string     Filter by exact niche (default: all)
  --location string  Filter by exact location (default: all)
  --top int          Number of creators to return (default: config default_top_k)
  --output string    Output format: text or json (default: text)
  --o string         Also export ranked results to a .csv or .xlsx file

Examples:
  erabu server --debug
  erabu match --file creators.csv looking for beauty influencers
  erabu match --file creators.xlsx --niche Fashion --top 5 "summer lookbook"`)
}

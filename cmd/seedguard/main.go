// Copyright 2025 The seedguard Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the seedguard IPC server, CLI and comment scanner.

seedguard flags text that very likely embeds a BIP39 wallet recovery phrase.
Scammers post "my wallet words" comments hoping someone imports the wallet
and tops it up with gas. seedguard finds those comments so they can be removed.

# Usage

Start the msgpack IPC server with default settings:

	seedguard

Check text interactively, using the builtin BIP39 English list:

	seedguard -c -dict builtin

Scan new comments from a JSON-lines export and review what was flagged:

	seedguard -scan -source comments.jsonl

Ignore the last scan time and rescan everything:

	seedguard -scan -source comments.jsonl -force-full

# Configuration

Configuration lives in ~/.config/seedguard/config.toml and is created with
defaults on first run:

	[detector]
	min_seed_words = 12
	dictionary_path = "english.txt"

	[scan]
	source_file = ""
	state_backend = "file"
	state_path = "last_scan_time.json"
	force_full_scan = false
	max_per_resource = 1000
	max_resource_age_days = 0

	[server]
	max_text_length = 10000

	[cli]
	preview_length = 100

	[log]
	level = "warn"
	file = ""
	console = true

Every [detector], [scan], [server] and [log] key can be overridden with a
SEEDGUARD_ prefixed environment variable, e.g. SEEDGUARD_MIN_SEED_WORDS=24.
Command line flags win over both.

# Command Line Flags

	-config string
	    Path to a config file
	-dict string
	    Word list file, or "builtin"
	-min int
	    Minimum number of seed words
	-d  Enable debug mode with detailed logging
	-c  Run the interactive check CLI
	-scan
	    Scan comments and review flagged ones
	-source string
	    JSON-lines comment file for -scan
	-force-full
	    Ignore the last scan time
	-days int
	    Only scan resources with comments in the last N days
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bastiangx/seedguard/internal/cli"
	"github.com/bastiangx/seedguard/internal/logger"
	"github.com/bastiangx/seedguard/internal/utils"
	"github.com/bastiangx/seedguard/pkg/comments"
	"github.com/bastiangx/seedguard/pkg/config"
	"github.com/bastiangx/seedguard/pkg/detect"
	"github.com/bastiangx/seedguard/pkg/dictionary"
	"github.com/bastiangx/seedguard/pkg/scan"
	"github.com/bastiangx/seedguard/pkg/scanstate"
	"github.com/bastiangx/seedguard/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

const (
	Version = "0.3.0"
	AppName = "seedguard"
	gh      = "https://github.com/bastiangx/seedguard"
)

// sigHandler cancels the returned context on the first signal and exits on the second.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		<-c
		os.Exit(1)
	}()
	return ctx
}

// main only wires packages together and picks the mode.
func main() {
	ctx := sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config file (default ~/.config/seedguard/config.toml)")
	dictPath := flag.String("dict", defaultConfig.Detector.DictionaryPath, "Word list file, or \"builtin\" for the BIP39 English list")
	minWords := flag.Int("min", defaultConfig.Detector.MinSeedWords, "Minimum number of seed words")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive check CLI")
	scanMode := flag.Bool("scan", false, "Scan comments and review flagged ones")
	sourceFile := flag.String("source", "", "JSON-lines comment file for -scan")
	forceFull := flag.Bool("force-full", false, "Ignore the last scan time and scan everything")
	maxAgeDays := flag.Int("days", defaultConfig.Scan.MaxResourceAgeDays, "Only scan resources with comments in the last N days (0 for all)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		logger.Setup(log.DebugLevel)
	}

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !*debugMode {
		logger.Setup(logger.ParseLevel(cfg.Log.Level))
	}
	closeLog, err := logger.AttachFile(cfg.Log.File, cfg.Log.Console)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", cfg.Log.File, err)
	}
	defer closeLog()
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(usedPath))

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Detector.DictionaryPath = *dictPath
		case "min":
			cfg.Detector.MinSeedWords = *minWords
		case "source":
			cfg.Scan.SourceFile = *sourceFile
		case "force-full":
			cfg.Scan.ForceFullScan = *forceFull
		case "days":
			cfg.Scan.MaxResourceAgeDays = *maxAgeDays
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	dict := loadDictionary(pathResolver, cfg.Detector.DictionaryPath)
	detector := detect.New(dict, cfg.Detector.MinSeedWords)
	log.Debug("Detector ready", "words", dict.Len(), "minSeedWords", detector.MinWords())

	switch {
	case *scanMode:
		if !detector.Enabled() {
			log.Fatalf("No dictionary words loaded, refusing to scan. Check dictionary_path or use -dict builtin")
		}
		if err := runScan(ctx, cfg, pathResolver, detector); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
	case *cliMode:
		inputHandler := cli.NewInputHandler(detector, os.Stdin, os.Stdout)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	default:
		log.Debug("spawning IPC")
		srv := server.NewServer(detector, cfg.Server.MaxTextLength)
		showStartupInfo(dict)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// loadDictionary opens the word list. Failures are logged by the loader and
// leave an empty dictionary, which disables detection.
func loadDictionary(pr *utils.PathResolver, source string) *dictionary.Dictionary {
	if source != dictionary.BuiltinSource {
		source = pr.ResolveDataFile(source)
	}
	dict, err := dictionary.Open(source)
	if err != nil {
		log.Warnf("Detection disabled until a word list is available (try -dict builtin)")
	}
	return dict
}

func runScan(ctx context.Context, cfg *config.Config, pr *utils.PathResolver, detector *detect.Detector) error {
	if cfg.Scan.SourceFile == "" {
		return fmt.Errorf("no comment source: set [scan] source_file or pass -source")
	}
	source := comments.NewJSONLSource(cfg.Scan.SourceFile, cfg.Scan.MaxPerResource)

	store, closeStore, err := openStore(ctx, cfg.Scan, pr)
	if err != nil {
		return err
	}
	defer closeStore()
	if cfg.Scan.ForceFullScan {
		log.Info("Force full scan: ignoring the last scan time")
		store = scanstate.ForceFull(store)
	}

	scanner := &scan.Scanner{
		Source:         source,
		Store:          store,
		Detector:       detector,
		MaxResourceAge: time.Duration(cfg.Scan.MaxResourceAgeDays) * 24 * time.Hour,
	}
	scanLog := logger.New("scan")
	scanLog.Infof("Scanning %s", source.Path())

	report, err := scanner.Run(ctx)
	if err != nil {
		return err
	}

	reviewer := cli.NewReviewer(scanner, os.Stdin, os.Stdout, cfg.CLI.PreviewLength)
	reviewer.PrintReport(report)
	deleted, err := reviewer.Review(ctx, report.Flagged)
	if deleted > 0 {
		fmt.Fprintf(os.Stdout, "deleted %s comments\n", humanize.Comma(int64(deleted)))
	}
	return err
}

func openStore(ctx context.Context, sc config.ScanConfig, pr *utils.PathResolver) (scanstate.Store, func(), error) {
	path := sc.StatePath
	if !filepath.IsAbs(path) {
		resolved, err := pr.GetConfigPath(path)
		if err != nil {
			return nil, nil, err
		}
		path = resolved
	}
	log.Debugf("Scan state (%s) at: %s", sc.StateBackend, path)

	if sc.StateBackend == "sqlite" {
		db, err := scanstate.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
	return scanstate.NewFileStore(path), func() {}, nil
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ seedguard ] Flags comments that leak wallet seed phrases")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info on stderr; stdout belongs to IPC.
func showStartupInfo(dict *dictionary.Dictionary) {
	info := logger.NewWithConfig(AppName, log.InfoLevel, false, false, log.TextFormatter)

	println("===========")
	println(" seedguard ")
	println("===========")
	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	info.Infof("dictionary: %s words", humanize.Comma(int64(dict.Len())))
	info.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")
}

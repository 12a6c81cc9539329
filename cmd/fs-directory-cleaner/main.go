package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/cleaner"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/config"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/database"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/disk"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/exitcodes"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/fsops"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/logging"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/metrics"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/safety"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: fs-directory-cleaner [flags] <root-path> <minimum-age-in-minutes>\n")
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to optional configuration file")
	execute := flag.Bool("execute", false, "Actually remove files (default is a dry run)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Usage = usage
	flag.Parse()

	// Load configuration first; positional arguments override it
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
			return exitcodes.InvalidConfig
		}
		cfg = loaded
	}

	rootPath := cfg.RootPath
	minimumAge := cfg.MinimumAge()

	switch args := flag.Args(); len(args) {
	case 2:
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes <= 0 {
			fmt.Fprintf(os.Stderr, "Error: minimum age must be a positive integer, got %q\n", args[1])
			usage()
			return exitcodes.UsageError
		}
		rootPath = args[0]
		minimumAge = time.Duration(minutes) * time.Minute
	case 0:
		// Acceptable only when the config file supplies both values
		if rootPath == "" || minimumAge <= 0 {
			usage()
			return exitcodes.UsageError
		}
	default:
		usage()
		return exitcodes.UsageError
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid root path %q: %v\n", rootPath, err)
		return exitcodes.UsageError
	}
	if err := checkRoot(absRoot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitcodes.UsageError
	}

	logger := logging.NewWithConfig(cfg)

	mode := cleaner.DryRun
	if *execute {
		mode = cleaner.Execute
	}
	logger.Printf("root=%s minimum-age=%s mode=%s", absRoot, minimumAge, mode)
	if mode == cleaner.DryRun {
		logger.Println("DRY RUN MODE: No files will be removed")
	}

	metrics.Init()
	if cfg.Prometheus.Port > 0 {
		logger.Printf("Starting Prometheus metrics on %s", cfg.PrometheusAddress())
		metrics.StartServer(cfg.PrometheusAddress(), logger)
	}

	c := cleaner.New(fsops.OSFS{}, mode, logger, os.Stdout)
	c.SetNoColor(*noColor || cfg.NoColor)
	c.SetValidator(safety.NewValidator([]string{absRoot}, cfg.ProtectedPaths))

	if cfg.DatabasePath != "" {
		logger.Printf("Opening history database: %s", cfg.DatabasePath)
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open database: %v\n", err)
			return exitcodes.RuntimeError
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: Failed to close database: %v", err)
			}
		}()
		c.SetDatabase(db)
	}

	// The age threshold is computed exactly once; every comparison in this
	// run uses the same value.
	oldestAllowed := time.Now().Add(-minimumAge)

	start := time.Now()
	metrics.RecordRun()
	publishFreeSpace(absRoot)

	c.DeleteDirectoriesIfOlderThan(absRoot, oldestAllowed)

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	publishFreeSpace(absRoot)

	logger.Printf("run complete: duration=%.3fs", time.Since(start).Seconds())
	return exitcodes.Success
}

// checkRoot rejects a root that does not exist or is not a directory before
// any traversal starts. Listings deeper in the tree tolerate vanishing
// entries, but a bad root is operator error and must not pass silently.
func checkRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("root path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %s is not a directory", path)
	}
	return nil
}

func publishFreeSpace(root string) {
	if free, err := disk.GetFreePercent(root); err == nil {
		metrics.FreeSpacePercent.WithLabelValues(root).Set(free)
	}
}

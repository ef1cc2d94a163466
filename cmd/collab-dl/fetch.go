package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/jkelley-blackboard/collaborate-local-download/internal/collab"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/config"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/fetcher"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/progress"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/report"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/store"
)

const defaultConfigPath = "download_config.yaml"

// runFetch downloads every recording in the report that is owned by the
// configured LTI key.
func runFetch(args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)

	configPath := fs.String("config", defaultConfigPath, "Path to YAML config file")
	reportPath := fs.String("report", "", "Recording report CSV (overrides config)")
	out := fs.String("out", "", "Destination directory or bucket URL (overrides config)")
	region := fs.String("region", "", "Collaborate region host (overrides config)")
	key := fs.String("key", "", "LTI key (overrides config)")
	secret := fs.String("secret", "", "LTI secret (overrides config)")
	timeout := fs.Duration("timeout", 0, "API request timeout (overrides config)")
	force := fs.Bool("force", false, "Re-download recordings already present at the destination")
	showProgress := fs.Bool("progress", false, "Show live progress output")
	verbose := fs.Bool("v", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: collab-dl fetch [options]

Read a Collaborate recording report and download each recording owned by
the configured LTI key into course directories under the destination.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*configPath, config.Config{
		RegionHost:      *region,
		LtiKey:          *key,
		LtiSecret:       *secret,
		RecordingReport: *reportPath,
		DownloadPath:    *out,
		RequestTimeout:  *timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	logger := newLogger(*verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[collab-dl] Received interrupt, shutting down...")
		cancel()
	}()

	rows, err := report.Load(cfg.RecordingReport)
	if err != nil {
		logger.Error().Err(err).Msg("load recording report")
		return ExitReportError
	}
	logger.Info().Int("rows", len(rows)).Str("report", cfg.RecordingReport).Msg("report loaded")

	st, err := store.Open(ctx, cfg.DownloadPath)
	if err != nil {
		logger.Error().Err(err).Msg("open destination")
		return ExitStorageError
	}
	defer st.Close()

	client := collab.NewClient(collab.Options{
		RegionHost: cfg.RegionHost,
		Key:        cfg.LtiKey,
		Secret:     cfg.LtiSecret,
		Timeout:    cfg.RequestTimeout,
	})

	var reporter *progress.Reporter
	if *showProgress {
		reporter = progress.NewReporter(progress.Options{
			TotalRecordings: len(rows),
			Output:          os.Stderr,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	f := fetcher.New(client, st, fetcher.Options{
		Owner:      cfg.LtiKey,
		RegionHost: cfg.RegionHost,
		Force:      *force,
		Log:        logger,
		Reporter:   reporter,
	})

	sum, err := f.Run(ctx, rows)
	if reporter != nil {
		reporter.Stop()
	}
	if err != nil {
		logger.Error().Err(err).
			Int("downloaded", sum.Downloaded).
			Int("skipped", sum.Skipped).
			Msg("run aborted")
		return exitCodeFor(err)
	}

	logger.Info().
		Int("downloaded", sum.Downloaded).
		Int("skipped", sum.Skipped).
		Msg("run complete")
	return ExitSuccess
}

// loadConfig builds the effective configuration: file, then environment,
// then flag overrides. A missing file at the default path is not an
// error; explicit paths must exist.
func loadConfig(path string, override config.Config) (config.Config, error) {
	cfg := config.Default()

	loaded, err := config.LoadFromFile(path)
	switch {
	case err == nil:
		cfg = loaded
	case errors.Is(err, os.ErrNotExist) && path == defaultConfigPath:
		// fall through to env and flags
	default:
		return config.Config{}, err
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	cfg = cfg.Merge(override)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// exitCodeFor maps a fatal run error to the process exit code.
func exitCodeFor(err error) int {
	var authErr *collab.AuthError
	if errors.As(err, &authErr) {
		return ExitAuthError
	}
	var dlErr *collab.DownloadError
	if errors.As(err, &dlErr) {
		return ExitDownloadError
	}
	return ExitGeneralError
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jkelley-blackboard/collaborate-local-download/internal/collab"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/config"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/fetcher"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/report"
)

// runPlan prints the decision for each report row without any network or
// write access: skip (and why) or the target path a fetch would produce.
func runPlan(args []string) int {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)

	configPath := fs.String("config", defaultConfigPath, "Path to YAML config file")
	reportPath := fs.String("report", "", "Recording report CSV (overrides config)")
	region := fs.String("region", "", "Collaborate region host (overrides config)")
	key := fs.String("key", "", "LTI key (overrides config)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: collab-dl plan [options]

Print what 'collab-dl fetch' would do for each report row. Makes no
network calls and writes nothing.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*configPath, config.Config{
		RegionHost:      *region,
		LtiKey:          *key,
		RecordingReport: *reportPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	rows, err := report.Load(cfg.RecordingReport)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitReportError
	}

	badRows := 0
	for _, row := range rows {
		id := collab.RecordingID(cfg.RegionHost, row.RecordingLink)

		if row.SessionOwner != cfg.LtiKey {
			fmt.Printf("skip   %s  owner=%s\n", id, row.SessionOwner)
			continue
		}

		target, err := fetcher.Target(row)
		if err != nil {
			fmt.Printf("error  %s  %v\n", id, err)
			badRows++
			continue
		}
		fmt.Printf("fetch  %s  -> %s\n", id, target)
	}

	if badRows > 0 {
		fmt.Fprintf(os.Stderr, "%d row(s) would fail\n", badRows)
		return ExitGeneralError
	}
	return ExitSuccess
}

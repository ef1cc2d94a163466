// Package progress provides live progress reporting for a download batch.
//
// The reporter prints a human-readable status line while the batch runs
// and a summary with total bytes, duration and average speed when it
// stops. It is opt-in via the -progress flag.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    TotalRecordings: len(rows),
//	    Output:          os.Stderr,
//	})
//
//	reporter.Start()
//	defer reporter.Stop()
//
//	// Update as rows are processed
//	reporter.Downloaded(bytesWritten)
//	reporter.Skipped()
//
// # Output Format
//
//	[collab-dl] Recordings: 12/40 | 3 skipped | 4.20 GB downloaded
//	[collab-dl] Done: 35 downloaded | 5 skipped | 0 failed | 11.03 GB in 8m 12s (22.9 MB/s)
package progress

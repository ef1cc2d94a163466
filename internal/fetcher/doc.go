// Package fetcher orchestrates the batch download loop.
//
// For each report row the fetcher refreshes the bearer token if it has
// expired, skips rows not owned by the configured integration key,
// resolves the signed download URL and streams the recording into the
// destination store. Every row ends in exactly one of three outcomes:
// skipped, downloaded or failed.
//
// Failure handling follows the row outcome model:
//   - a failed download-URL resolve skips the row and continues
//   - a failed token mint aborts the run
//   - a failed media fetch or store write aborts the run
//
// # Usage
//
//	f := fetcher.New(client, st, fetcher.Options{
//	    Owner:      cfg.LtiKey,
//	    RegionHost: cfg.RegionHost,
//	})
//	summary, err := f.Run(ctx, rows)
package fetcher

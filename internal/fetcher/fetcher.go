package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jkelley-blackboard/collaborate-local-download/internal/collab"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/progress"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/report"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/store"
)

// Options configures the fetcher.
type Options struct {
	// Owner is the integration key; rows whose SessionOwner differs are
	// skipped without any API call.
	Owner string

	// RegionHost is needed to strip recording ids out of report links.
	RegionHost string

	// Force re-downloads recordings whose target file already exists.
	Force bool

	// Log receives one status event per row.
	Log zerolog.Logger

	// Now is the clock used for token expiry checks. Default: time.Now.
	Now func() time.Time

	// Reporter is an optional live progress reporter.
	Reporter *progress.Reporter
}

// Summary counts row outcomes for one run.
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Fetcher drives the per-row download loop.
type Fetcher struct {
	client *collab.Client
	store  *store.Store
	opts   Options
}

// New creates a fetcher over the given API client and destination store.
func New(client *collab.Client, st *store.Store, opts Options) *Fetcher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{
		client: client,
		store:  st,
		opts:   opts,
	}
}

// Run processes the report rows in order. It returns the outcome counts
// and the error that stopped the run, if any. The loop is strictly
// sequential; the token is minted lazily and re-minted whenever the
// expiry check fails.
func (f *Fetcher) Run(ctx context.Context, rows []report.Row) (Summary, error) {
	var (
		sum Summary
		tok collab.Token
	)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		id := collab.RecordingID(f.opts.RegionHost, row.RecordingLink)

		if tok.Expired(f.opts.Now()) {
			minted, err := f.client.Mint(ctx)
			if err != nil {
				return sum, fmt.Errorf("mint token: %w", err)
			}
			tok = minted
			f.opts.Log.Debug().Time("expires_at", tok.ExpiresAt).Msg("token refreshed")
		}

		if row.SessionOwner != f.opts.Owner {
			sum.Skipped++
			f.reportSkip()
			f.opts.Log.Info().
				Str("recording", id).
				Str("owner", row.SessionOwner).
				Msg("skipped: not owned by configured key")
			continue
		}

		key, err := Target(row)
		if err != nil {
			sum.Failed++
			f.reportFail()
			return sum, fmt.Errorf("recording %s: %w", id, err)
		}

		if !f.opts.Force {
			exists, err := f.store.Exists(ctx, key)
			if err != nil {
				sum.Failed++
				f.reportFail()
				return sum, fmt.Errorf("recording %s: %w", id, err)
			}
			if exists {
				sum.Skipped++
				f.reportSkip()
				f.opts.Log.Info().
					Str("recording", id).
					Str("target", key).
					Msg("skipped: already downloaded")
				continue
			}
		}

		signedURL, err := f.client.DownloadURL(ctx, id, tok)
		if err != nil {
			var resolveErr *collab.ResolveError
			if errors.As(err, &resolveErr) {
				sum.Skipped++
				f.reportSkip()
				f.opts.Log.Warn().
					Str("recording", id).
					Int("status", resolveErr.Status).
					Msg("skipped: no download url")
				continue
			}
			sum.Failed++
			f.reportFail()
			return sum, fmt.Errorf("recording %s: %w", id, err)
		}

		body, _, err := f.client.Fetch(ctx, signedURL)
		if err != nil {
			sum.Failed++
			f.reportFail()
			return sum, fmt.Errorf("recording %s: %w", id, err)
		}

		written, err := f.store.Write(ctx, key, body)
		body.Close()
		if err != nil {
			sum.Failed++
			f.reportFail()
			return sum, fmt.Errorf("recording %s: %w", id, err)
		}

		sum.Downloaded++
		if f.opts.Reporter != nil {
			f.opts.Reporter.Downloaded(written)
		}
		f.opts.Log.Info().
			Str("recording", id).
			Str("target", key).
			Int64("bytes", written).
			Msg("downloaded")
	}

	return sum, nil
}

func (f *Fetcher) reportSkip() {
	if f.opts.Reporter != nil {
		f.opts.Reporter.Skipped()
	}
}

func (f *Fetcher) reportFail() {
	if f.opts.Reporter != nil {
		f.opts.Reporter.Failed()
	}
}

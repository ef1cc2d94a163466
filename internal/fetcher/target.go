package fetcher

import (
	"fmt"
	"time"

	"github.com/jkelley-blackboard/collaborate-local-download/internal/report"
	"github.com/jkelley-blackboard/collaborate-local-download/internal/slug"
)

const (
	// createdLayout is the RecordingCreated timestamp format, exactly as
	// the recording report emits it.
	createdLayout = "2006-01-02 15:04:05"

	// namePrefixLayout leads filenames with the creation instant so they
	// list chronologically.
	namePrefixLayout = "20060102_1504"

	// maxStemLen caps the filename before the extension to stay inside
	// filesystem path limits.
	maxStemLen = 200

	// noContextDir collects recordings whose session has no course
	// context.
	noContextDir = "_none"

	ext = ".mp4"
)

// Filename derives the deterministic output filename for a row:
// {created}_{session}_{recording}.mp4, with the stem capped at 200
// characters.
func Filename(row report.Row) (string, error) {
	created, err := time.Parse(createdLayout, row.RecordingCreated)
	if err != nil {
		return "", fmt.Errorf("parse RecordingCreated %q: %w", row.RecordingCreated, err)
	}

	stem := created.Format(namePrefixLayout) + "_" + slug.Make(row.SessionName) + "_" + slug.Make(row.RecordingName)
	if runes := []rune(stem); len(runes) > maxStemLen {
		stem = string(runes[:maxStemLen])
	}
	return stem + ext, nil
}

// Dir derives the output subdirectory for a row from its course context.
// Rows without a context, or whose context slugs away to nothing, go to
// "_none".
func Dir(row report.Row) string {
	d := slug.Make(row.ContextIdentifier)
	if d == "" {
		return noContextDir
	}
	return d
}

// Target derives the full store key for a row: {dir}/{filename}.
func Target(row report.Row) (string, error) {
	name, err := Filename(row)
	if err != nil {
		return "", err
	}
	return Dir(row) + "/" + name, nil
}

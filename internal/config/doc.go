// Package config defines configuration for the collab-dl CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (COLLAB_ prefix)
//   - YAML configuration file
//
// # Structure
//
//	type Config struct {
//	    RegionHost      string
//	    LtiKey          string
//	    LtiSecret       string
//	    RecordingReport string
//	    DownloadPath    string
//	    RequestTimeout  time.Duration
//	}
//
// DownloadPath is usually a local directory but may also be a bucket URL
// (s3://, gs://, file://).
package config

// Package collab is a client for the Collaborate CSA REST API.
//
// The client covers the three calls the download loop needs:
//   - Mint: exchange a signed JWT-bearer assertion for a short-lived
//     access token
//   - DownloadURL: resolve a recording id to a time-limited signed
//     download URL
//   - Fetch: stream the media bytes from a signed URL
//
// # Usage
//
//	client := collab.NewClient(collab.Options{
//	    RegionHost: "https://us.bbcollab.com",
//	    Key:        key,
//	    Secret:     secret,
//	})
//
//	tok, err := client.Mint(ctx)
//	url, err := client.DownloadURL(ctx, recordingID, tok)
//	body, size, err := client.Fetch(ctx, url)
//
// Error classes map to how the caller should react: *AuthError and
// *DownloadError are fatal for the run, *ResolveError means skip the row
// and continue.
package collab

package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// apiPath is appended to the region host to form the CSA API base URL.
	apiPath = "/collab/api/csa"

	// grantType is the OAuth JWT-bearer grant used by the token endpoint.
	grantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// assertionTTL is the lifetime of the signed assertion sent to the
	// token endpoint. Five minutes is the maximum the API accepts.
	assertionTTL = 5 * time.Minute
)

// AuthError reports a failed token mint. Any non-200 response from the
// token endpoint is fatal for the run.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("collab: token request failed: status %d", e.Status)
}

// ResolveError reports a failed download-URL lookup for one recording.
// It is a soft failure: the caller skips the recording and continues.
type ResolveError struct {
	RecordingID string
	Status      int
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("collab: no download url for recording %s: status %d", e.RecordingID, e.Status)
}

// DownloadError reports a failed media fetch from a signed URL.
type DownloadError struct {
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("collab: media download failed: status %d", e.Status)
}

// Options configures the API client.
type Options struct {
	// RegionHost is the Collaborate region base URL, e.g.
	// "https://us.bbcollab.com".
	RegionHost string

	// Key and Secret are the LTI integration credentials. Key doubles as
	// issuer and subject of the token assertion.
	Key    string
	Secret string

	// Timeout applies to the token and resolve calls.
	// Default: 30s
	Timeout time.Duration
}

// Client calls the Collaborate CSA API.
type Client struct {
	base   string
	key    string
	secret string

	// api has an overall timeout; stream does not, because recording
	// bodies can take arbitrarily long to drain. The stream client still
	// bounds the wait for response headers.
	api    *http.Client
	stream *http.Client

	now func() time.Time
}

// NewClient creates a client for the region in opts.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		base:   strings.TrimSuffix(opts.RegionHost, "/") + apiPath,
		key:    opts.Key,
		secret: opts.Secret,
		api: &http.Client{
			Timeout: opts.Timeout,
		},
		stream: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: opts.Timeout,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		now: time.Now,
	}
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Mint exchanges a signed assertion for a bearer token. The assertion is
// an HS256 JWT with issuer and subject set to the integration key and a
// five minute expiry. Any non-200 response yields *AuthError.
func (c *Client) Mint(ctx context.Context) (Token, error) {
	now := c.now()

	claims := jwt.RegisteredClaims{
		Issuer:    c.key,
		Subject:   c.key,
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.secret))
	if err != nil {
		return Token{}, fmt.Errorf("collab: sign assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, fmt.Errorf("collab: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.key, c.secret)

	resp, err := c.api.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("collab: token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Token{}, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return Token{}, fmt.Errorf("collab: decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return Token{}, fmt.Errorf("collab: token response missing access_token")
	}

	return Token{
		Bearer:    tr.AccessToken,
		ExpiresAt: now.Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}

// DownloadURL resolves a recording id to a time-limited signed download
// URL. A non-200 response yields *ResolveError so the caller can skip the
// recording without aborting the batch.
func (c *Client) DownloadURL(ctx context.Context, recordingID string, tok Token) (string, error) {
	endpoint := c.base + "/recordings/" + url.PathEscape(recordingID) + "/url?disposition=download"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("collab: create resolve request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.Bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return "", fmt.Errorf("collab: resolve request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ResolveError{RecordingID: recordingID, Status: resp.StatusCode}
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("collab: decode resolve response: %w", err)
	}
	if body.URL == "" {
		return "", &ResolveError{RecordingID: recordingID, Status: resp.StatusCode}
	}

	return body.URL, nil
}

// Fetch opens a streaming GET of the signed URL. The signed URL carries
// its own authorization, so no bearer header is sent. The caller owns the
// returned body. Size is the Content-Length, or -1 when unknown.
func (c *Client) Fetch(ctx context.Context, signedURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("collab: create media request: %w", err)
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("collab: media request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, 0, &DownloadError{Status: resp.StatusCode}
	}

	return resp.Body, resp.ContentLength, nil
}

// RecordingID extracts the recording id from a report RecordingLink of the
// form {regionHost}/recording/{id}.
func RecordingID(regionHost, link string) string {
	id := strings.TrimPrefix(link, strings.TrimSuffix(regionHost, "/")+"/recording/")
	return strings.TrimSpace(id)
}

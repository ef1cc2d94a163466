// Package testutils provides shared test infrastructure: a fake
// Collaborate CSA API server covering the token, resolve and media
// endpoints.
package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Recording defines one downloadable recording on the fake server.
type Recording struct {
	ID   string
	Data []byte
}

// CSAServer is a fake Collaborate CSA API for tests. It serves the token
// endpoint, the download-URL resolve endpoint and the signed media URLs,
// and counts the requests it receives.
type CSAServer struct {
	*httptest.Server

	// ExpiresIn is the expires_in value returned by the token endpoint.
	// Zero makes every minted token immediately expired.
	ExpiresIn int64

	// MediaStatus overrides the status code served for a recording's
	// media URL. Zero means 200 with the recording bytes.
	MediaStatus map[string]int

	key    string
	secret string

	mu             sync.Mutex
	recordings     map[string][]byte
	tokenRequests  int
	resolveCounts  map[string]int
	mediaRequests  int
	mintedTokens   int
	resolveBearers []string
}

// StartCSAServer starts a fake CSA server that accepts the given key and
// secret and serves the given recordings.
func StartCSAServer(t *testing.T, key, secret string, recordings []Recording) *CSAServer {
	t.Helper()

	s := &CSAServer{
		ExpiresIn:     3600,
		MediaStatus:   make(map[string]int),
		key:           key,
		secret:        secret,
		recordings:    make(map[string][]byte),
		resolveCounts: make(map[string]int),
	}
	for _, r := range recordings {
		s.recordings[r.ID] = r.Data
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

func (s *CSAServer) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/collab/api/csa/token":
		s.handleToken(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/collab/api/csa/recordings/"):
		s.handleResolve(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/media/"):
		s.handleMedia(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *CSAServer) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tokenRequests++
	s.mintedTokens++
	token := fmt.Sprintf("test-bearer-%d", s.mintedTokens)
	expiresIn := s.ExpiresIn
	s.mu.Unlock()

	user, pass, ok := r.BasicAuth()
	if !ok || user != s.key || pass != s.secret {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("assertion") == "" {
		http.Error(w, `{"error":"invalid_request"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"access_token":%q,"expires_in":%d}`, token, expiresIn)
}

func (s *CSAServer) handleResolve(w http.ResponseWriter, r *http.Request) {
	// Path: /collab/api/csa/recordings/{id}/url
	rest := strings.TrimPrefix(r.URL.Path, "/collab/api/csa/recordings/")
	id := strings.TrimSuffix(rest, "/url")

	s.mu.Lock()
	s.resolveCounts[id]++
	s.resolveBearers = append(s.resolveBearers, r.Header.Get("Authorization"))
	_, known := s.recordings[id]
	s.mu.Unlock()

	if !known {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"url":%q}`, s.URL+"/media/"+id)
}

func (s *CSAServer) handleMedia(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/media/")

	s.mu.Lock()
	s.mediaRequests++
	data, known := s.recordings[id]
	status := s.MediaStatus[id]
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	if !known {
		http.NotFound(w, r)
		return
	}
	w.Write(data)
}

// TokenRequests returns how many times the token endpoint was called.
func (s *CSAServer) TokenRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenRequests
}

// ResolveRequests returns how many times the given recording was resolved.
func (s *CSAServer) ResolveRequests(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveCounts[id]
}

// MediaRequests returns how many media fetches the server saw.
func (s *CSAServer) MediaRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediaRequests
}

// ResolveBearers returns the Authorization headers seen on resolve calls.
func (s *CSAServer) ResolveBearers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resolveBearers...)
}

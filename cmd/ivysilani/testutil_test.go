package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	tokenPath       = "/services/ivysilani/xml/token/"
	listPath        = "/services-old/ivysilani/xml/programmelist/"
	detailPath      = "/services/ivysilani/xml/programmedetail/"
	genreListPath   = "/services-old/ivysilani/xml/genrelist/"
	alphabetPath    = "/services-old/ivysilani/xml/alphabetlist/"
	vodManifestPath = "/video/v1/playlist-vod/v1/stream-data/media/external/"
)

// fakeAPI serves both service hosts from one test server, keyed by path.
// The token endpoint is always present.
func fakeAPI(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			writeXML(w, `<token>test-token</token>`)
			return
		}
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeXML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/xml")
	_, _ = io.WriteString(w, body)
}

func xmlHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeXML(w, body)
	}
}

// configFor writes a config file pointing both hosts at server.
func configFor(t *testing.T, server *httptest.Server, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[client]
web_base_url = "` + server.URL + `"
api_base_url = "` + server.URL + `"

[log]
level = "error"
` + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

package ivysilani

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockAPI creates a test server that answers for both API hosts, keyed by path.
func mockAPI(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestClient points both hosts of a client at server.
func newTestClient(server *httptest.Server, opts ...Option) *Client {
	base := []Option{WithBaseURL(server.URL), WithAPIBaseURL(server.URL)}
	return New(append(base, opts...)...)
}

func writeXML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/xml")
	_, _ = io.WriteString(w, body)
}

// tokenHandler hands out tokens in order, repeating the last one, and counts calls.
func tokenHandler(calls *atomic.Int32, tokens ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		if r.Method != http.MethodPost || r.FormValue("user") != tokenUser {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		token := tokens[min(n, len(tokens))-1]
		writeXML(w, `<?xml version="1.0" encoding="utf-8"?><token>`+token+`</token>`)
	}
}

// requireToken answers with the API's wrong-token envelope unless the request carries valid.
func requireToken(valid string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("token") != valid {
			writeXML(w, `<errors><error>wrong token</error></errors>`)
			return
		}
		handler(w, r)
	}
}

// counted wraps a handler and counts its calls.
func counted(calls *atomic.Int32, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}
}

func xmlHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeXML(w, body)
	}
}

// bufferLogger returns a logger writing text records into buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func requireForm(t *testing.T, r *http.Request) {
	t.Helper()
	require.NoError(t, r.ParseForm())
}

const masterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=1280000,RESOLUTION=1280x720,CODECS="avc1.4d401f,mp4a.40.2"
720/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=640000,RESOLUTION=640x360
360/index.m3u8
`

func playlistHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
	_, _ = io.WriteString(w, masterPlaylist)
}

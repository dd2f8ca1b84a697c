package ivysilani

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/ivysilani/pkg/ivysilani/mocks"
)

func TestNew(t *testing.T) {
	client := New()
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
	assert.Equal(t, DefaultImageWidth, client.imageWidth)
	assert.Equal(t, DefaultPageSize, client.pageSize)
	assert.Nil(t, client.log)
}

func TestNew_WithOptions(t *testing.T) {
	customHTTP := &http.Client{Timeout: 5 * time.Second}

	client := New(
		WithHTTPClient(customHTTP),
		WithUserAgent("test-agent"),
		WithImageWidth(800),
		WithPageSize(10),
	)

	assert.Same(t, customHTTP, client.httpClient)
	assert.Equal(t, "test-agent", client.userAgent)
	assert.Equal(t, 800, client.imageWidth)
	assert.Equal(t, 10, client.pageSize)
}

func TestNew_WithTimeout(t *testing.T) {
	client := New(WithTimeout(3 * time.Second))
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
}

func TestEndpoint(t *testing.T) {
	client := New()

	got, err := client.endpoint(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "https://www.ceskatelevize.cz/services/ivysilani/xml/token/", got)

	got, err = client.endpoint(vodManifestPath + "123")
	require.NoError(t, err)
	assert.Equal(t, "https://api.ceskatelevize.cz/video/v1/playlist-vod/v1/stream-data/media/external/123", got)

	got, err = client.endpoint("example.com/a/b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b", got)

	_, err = client.endpoint("no-path")
	assert.Error(t, err)
}

func TestEndpoint_Overrides(t *testing.T) {
	client := New(WithBaseURL("http://web.test/"), WithAPIBaseURL("http://api.test"))

	got, err := client.endpoint(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "http://web.test"+tokenPath, got)

	got, err = client.endpoint(liveManifestPath + "24")
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/video/v1/playlist-live/v1/stream-data/channel/CH_24", got)
}

func TestFetch_PostSendsForm(t *testing.T) {
	server := mockAPI(t, map[string]http.HandlerFunc{
		"/form": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
			requireForm(t, r)
			assert.Equal(t, "1", r.PostForm.Get("a"))
			_, _ = w.Write([]byte("ok"))
		},
	})
	client := newTestClient(server)

	data, err := client.fetch(context.Background(), "/form", url.Values{"a": {"1"}}, http.MethodPost)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestFetch_GetSendsQuery(t *testing.T) {
	server := mockAPI(t, map[string]http.HandlerFunc{
		"/query": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "2", r.URL.Query().Get("b"))
			_, _ = w.Write([]byte("ok"))
		},
	})
	client := newTestClient(server)

	data, err := client.fetch(context.Background(), "/query", url.Values{"b": {"2"}}, http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestFetch_DecodesGzip(t *testing.T) {
	server := mockAPI(t, map[string]http.HandlerFunc{
		"/gz": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			_, _ = gz.Write([]byte("<token>zipped</token>"))
			_ = gz.Close()
		},
	})
	client := newTestClient(server)

	data, err := client.fetch(context.Background(), "/gz", url.Values{}, http.MethodPost)
	require.NoError(t, err)
	assert.Equal(t, "<token>zipped</token>", string(data))
}

func TestFetch_DecodesBrotli(t *testing.T) {
	server := mockAPI(t, map[string]http.HandlerFunc{
		"/br": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "br")
			bw := brotli.NewWriter(w)
			_, _ = bw.Write([]byte("compressed"))
			_ = bw.Close()
		},
	})
	client := newTestClient(server)

	data, err := client.fetch(context.Background(), "/br", url.Values{}, http.MethodPost)
	require.NoError(t, err)
	assert.Equal(t, "compressed", string(data))
}

func TestFetch_FailuresAreNoData(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"empty body", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockAPI(t, map[string]http.HandlerFunc{"/x": tt.handler})
			client := newTestClient(server)

			data, err := client.fetch(context.Background(), "/x", url.Values{}, http.MethodPost)
			assert.Nil(t, data)
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestFetch_NetworkErrorIsNoData(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := New(WithBaseURL(server.URL))

	_, err := client.fetch(context.Background(), "/x", url.Values{}, http.MethodPost)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFetch_VerboseLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettings(ctrl)
	settings.EXPECT().VerboseLogging().Return(true).AnyTimes()

	server := mockAPI(t, map[string]http.HandlerFunc{
		"/x": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("payload"))
		},
	})

	var buf bytes.Buffer
	client := newTestClient(server, WithSettings(settings), WithLogger(bufferLogger(&buf)))

	_, err := client.fetch(context.Background(), "/x", url.Values{"token": {"secret"}}, http.MethodPost)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sending request")
	assert.Contains(t, out, "response received")
	assert.Contains(t, out, "payload")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "component=ivysilani")
}

func TestFetch_QuietWithoutVerboseSetting(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettings(ctrl)
	settings.EXPECT().VerboseLogging().Return(false).MinTimes(1)

	server := mockAPI(t, map[string]http.HandlerFunc{
		"/x": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("payload"))
		},
	})

	var buf bytes.Buffer
	client := newTestClient(server, WithSettings(settings), WithLogger(bufferLogger(&buf)))

	_, err := client.fetch(context.Background(), "/x", url.Values{}, http.MethodPost)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "sending request")
}

func TestRedact(t *testing.T) {
	params := url.Values{"token": {"secret"}, "ID": {"1"}}
	assert.Equal(t, "ID=1&token=%2A%2A%2A", redact(params))
	assert.Equal(t, "secret", params.Get("token"))
	assert.Equal(t, "ID=1", redact(url.Values{"ID": {"1"}}))
}

func TestFetch_RateLimit(t *testing.T) {
	server := mockAPI(t, map[string]http.HandlerFunc{
		"/ping": xmlHandler(`<ok/>`),
	})

	client := newTestClient(server, WithRateLimit(1000, 2))
	require.NotNil(t, client.limiter)
	for range 3 {
		_, err := client.fetch(context.Background(), "/ping", nil, http.MethodGet)
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.fetch(ctx, "/ping", nil, http.MethodGet)
	assert.ErrorIs(t, err, ErrNoData)

	assert.Nil(t, New(WithRateLimit(0, 5)).limiter)
}

// Package ivysilani is a client for the Česká televize iVysílání catch-up API.
//
// A Client owns all process state the API needs: the bearer token, the genre
// and alphabet lists and the live channel catalogue. Create one at startup and
// share it for the life of the process.
package ivysilani

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	webHost = "www.ceskatelevize.cz"
	apiHost = "api.ceskatelevize.cz"

	tokenPath           = "/services/ivysilani/xml/token/"
	programmeListPath   = "/services-old/ivysilani/xml/programmelist/"
	programmeDetailPath = "/services/ivysilani/xml/programmedetail/"
	genreListPath       = "/services-old/ivysilani/xml/genrelist/"
	alphabetListPath    = "/services-old/ivysilani/xml/alphabetlist/"
	liveManifestPath    = apiHost + "/video/v1/playlist-live/v1/stream-data/channel/CH_"
	vodManifestPath     = apiHost + "/video/v1/playlist-vod/v1/stream-data/media/external/"
)

// Defaults used when no option overrides them.
const (
	DefaultTimeout    = 15 * time.Second
	DefaultUserAgent  = "Dalvik/1.6.0 (Linux; U; Android 4.4.4; Nexus 7 Build/KTU84P)"
	DefaultImageWidth = 400
	DefaultPageSize   = 25
)

// Settings is the host settings provider consulted on every request.
//
//go:generate mockgen -destination=mocks/mock_settings.go -package=mocks . Settings
type Settings interface {
	// VerboseLogging reports whether request and response metadata should be logged.
	VerboseLogging() bool
}

// Client talks to the iVysílání XML API and the video manifest API.
type Client struct {
	hosts      map[string]string
	httpClient *http.Client
	userAgent  string
	imageWidth int
	pageSize   int
	settings   Settings
	log        *slog.Logger
	limiter    *rate.Limiter

	tokenMu sync.Mutex
	token   string

	listMu   sync.Mutex
	genres   []Genre
	alphabet []Letter

	channelsOnce sync.Once
	channels     []*LiveChannel
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the base URL used for the www.ceskatelevize.cz host (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.hosts[webHost] = url
	}
}

// WithAPIBaseURL sets the base URL used for the api.ceskatelevize.cz host (for testing).
func WithAPIBaseURL(url string) Option {
	return func(c *Client) {
		c.hosts[apiHost] = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout replaces the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the spoofed mobile User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithImageWidth sets the imageType parameter sent with list and detail requests.
func WithImageWidth(width int) Option {
	return func(c *Client) {
		if width > 0 {
			c.imageWidth = width
		}
	}
}

// WithPageSize sets the default page size for episode, related and bonus lists.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithRateLimit caps outgoing requests at perSecond. Zero or less disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithSettings sets the settings provider.
func WithSettings(s Settings) Option {
	return func(c *Client) {
		c.settings = s
	}
}

// WithLogger sets a logger. Without one the client is silent.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "ivysilani")
		}
	}
}

// New creates a new iVysílání client.
func New(opts ...Option) *Client {
	c := &Client{
		hosts: make(map[string]string),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent:  DefaultUserAgent,
		imageWidth: DefaultImageWidth,
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) verbose() bool {
	return c.log != nil && c.settings != nil && c.settings.VerboseLogging()
}

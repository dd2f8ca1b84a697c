// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
)

// Config is the root configuration structure.
type Config struct {
	Client    ClientConfig    `toml:"client"`
	Log       LogConfig       `toml:"log"`
	Subtitles SubtitlesConfig `toml:"subtitles"`
}

type ClientConfig struct {
	WebBaseURL string        `toml:"web_base_url"`
	APIBaseURL string        `toml:"api_base_url"`
	UserAgent  string        `toml:"user_agent"`
	Timeout    time.Duration `toml:"timeout"`
	ImageWidth int           `toml:"image_width"`
	PageSize   int           `toml:"page_size"`
	RateLimit  float64       `toml:"rate_limit"` // requests per second, 0 is unlimited
}

type LogConfig struct {
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"` // log every request and a response preview
}

type SubtitlesConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file. Unset environment variables
// and validation failures are reported together as *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

// LoadOrDefault loads path, or the discovered config when path is empty.
// Defaults apply when no config file exists.
func LoadOrDefault(path string) (*Config, string, error) {
	if path == "" {
		found, err := Discover()
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Default(), "", nil
			}
			return nil, "", err
		}
		path = found
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) applyDefaults() {
	if c.Client.UserAgent == "" {
		c.Client.UserAgent = ivysilani.DefaultUserAgent
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = ivysilani.DefaultTimeout
	}
	if c.Client.ImageWidth == 0 {
		c.Client.ImageWidth = ivysilani.DefaultImageWidth
	}
	if c.Client.PageSize == 0 {
		c.Client.PageSize = ivysilani.DefaultPageSize
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// VerboseLogging implements ivysilani.Settings.
func (c *Config) VerboseLogging() bool {
	return c.Log.Verbose
}

// ClientOptions translates the client section into ivysilani options.
func (c *Config) ClientOptions(log *slog.Logger) []ivysilani.Option {
	opts := []ivysilani.Option{
		ivysilani.WithUserAgent(c.Client.UserAgent),
		ivysilani.WithTimeout(c.Client.Timeout),
		ivysilani.WithImageWidth(c.Client.ImageWidth),
		ivysilani.WithPageSize(c.Client.PageSize),
		ivysilani.WithSettings(c),
	}
	if c.Client.WebBaseURL != "" {
		opts = append(opts, ivysilani.WithBaseURL(c.Client.WebBaseURL))
	}
	if c.Client.APIBaseURL != "" {
		opts = append(opts, ivysilani.WithAPIBaseURL(c.Client.APIBaseURL))
	}
	if c.Client.RateLimit > 0 {
		opts = append(opts, ivysilani.WithRateLimit(c.Client.RateLimit, 1))
	}
	if log != nil {
		opts = append(opts, ivysilani.WithLogger(log))
	}
	return opts
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables are left in place and returned in order of appearance.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}

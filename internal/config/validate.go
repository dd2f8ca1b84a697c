package config

import (
	"fmt"
	"net/url"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	for key, raw := range map[string]string{
		"client.web_base_url": c.Client.WebBaseURL,
		"client.api_base_url": c.Client.APIBaseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("%s: must be an http(s) URL, got %q", key, raw))
		}
	}

	if c.Client.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("client.timeout: must not be negative, got %s", c.Client.Timeout))
	}
	if c.Client.ImageWidth < 0 {
		errs = append(errs, fmt.Sprintf("client.image_width: must be positive, got %d", c.Client.ImageWidth))
	}
	if c.Client.PageSize < 0 {
		errs = append(errs, fmt.Sprintf("client.page_size: must be positive, got %d", c.Client.PageSize))
	}

	if c.Client.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("client.rate_limit: must not be negative, got %g", c.Client.RateLimit))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Subtitles.Dir != "" {
		if info, err := os.Stat(c.Subtitles.Dir); err == nil && !info.IsDir() {
			errs = append(errs, fmt.Sprintf("subtitles.dir: %q is not a directory", c.Subtitles.Dir))
		}
	}

	return errs
}

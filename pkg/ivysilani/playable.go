package ivysilani

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/grafov/m3u8"
)

// Stream types accepted by the manifest API.
const (
	StreamHLS  = "hls"
	StreamDASH = "dash"
)

const (
	drmOnlyMarker  = "drmOnly=true"
	manifestOrigin = "ivysilani"
	liveIDPrefix   = "CT"
)

// playable resolves stream URLs for a programme or live channel and keeps
// every URL it verified. The cache only grows.
type playable struct {
	client *Client
	id     string

	linkMu sync.Mutex
	links  map[Quality]string
}

func (p *playable) cached(q Quality) (string, bool) {
	p.linkMu.Lock()
	defer p.linkMu.Unlock()
	u, ok := p.links[q]
	return u, ok
}

// remember stores u for q unless q already has a URL.
func (p *playable) remember(q Quality, u string) {
	p.linkMu.Lock()
	defer p.linkMu.Unlock()
	if p.links == nil {
		p.links = make(map[Quality]string)
	}
	if _, ok := p.links[q]; !ok {
		p.links[q] = u
	}
}

// URL returns a verified stream URL for quality. An empty streamType means HLS.
//
// A DRM-only answer is retried once as DASH. A URL that fails the liveness
// probe is returned as ErrStreamUnavailable and not cached.
func (p *playable) URL(ctx context.Context, q Quality, streamType string) (string, error) {
	if u, ok := p.cached(q); ok {
		return u, nil
	}
	if streamType == "" {
		streamType = StreamHLS
	}

	u, err := p.resolve(ctx, q, streamType)
	if err != nil {
		return "", err
	}

	if strings.Contains(u, drmOnlyMarker) {
		if streamType == StreamDASH {
			return "", fmt.Errorf("%s %s: %w", p.id, q, ErrDRMOnly)
		}
		if p.client.log != nil {
			p.client.log.Debug("stream is DRM only, retrying as dash", "id", p.id, "quality", q.String())
		}
		streamType = StreamDASH
		if u, err = p.resolve(ctx, q, streamType); err != nil {
			return "", err
		}
		if strings.Contains(u, drmOnlyMarker) {
			return "", fmt.Errorf("%s %s: %w", p.id, q, ErrDRMOnly)
		}
	}

	if err := p.client.probe(ctx, u, streamType); err != nil {
		if p.client.log != nil {
			p.client.log.Error("stream probe failed", "id", p.id, "url", u, "error", err)
		}
		return "", fmt.Errorf("%s %s: %w: %w", p.id, q, ErrStreamUnavailable, err)
	}

	p.remember(q, u)
	return u, nil
}

// resolve asks the manifest API for a stream URL.
func (p *playable) resolve(ctx context.Context, q Quality, streamType string) (string, error) {
	params := url.Values{
		"quality":        {q.String()},
		"streamType":     {streamType},
		"origin":         {manifestOrigin},
		"usePlayability": {"true"},
		"canPlayDrm":     {"true"},
	}

	var target string
	if code, ok := strings.CutPrefix(p.id, liveIDPrefix); ok {
		// The DRM handler cannot process the live manifest format, and the
		// live streams play fine without DRM.
		params.Set("canPlayDrm", "false")
		target = liveManifestPath + code
	} else {
		target = vodManifestPath + p.id
	}

	data, err := p.client.fetch(ctx, target, params, http.MethodPost)
	if err != nil {
		return "", fmt.Errorf("manifest %s: %w", p.id, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		if p.client.log != nil {
			p.client.log.Error("decode manifest", "id", p.id, "error", err)
		}
		return "", fmt.Errorf("decode manifest %s: %w", p.id, err)
	}

	u := m.streamURL()
	if u == "" {
		return "", fmt.Errorf("%s %s: %w", p.id, q, ErrNoStream)
	}
	return u, nil
}

// AvailableQualities probes every tier and returns the qualities the server
// actually delivers, highest first. The server may answer a request with a
// different tier; the tier it reports wins. Failed tiers are skipped.
func (p *playable) AvailableQualities(ctx context.Context) []Quality {
	seen := make(map[Quality]bool)
	var out []Quality

	for _, requested := range Qualities() {
		u, err := p.URL(ctx, requested, StreamHLS)
		if err != nil {
			if p.client.log != nil {
				p.client.log.Debug("quality unavailable", "id", p.id, "quality", requested.String(), "error", err)
			}
			continue
		}

		actual := reportedQuality(u, requested)
		p.remember(actual, u)
		if !seen[actual] {
			seen[actual] = true
			out = append(out, actual)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Height > out[j].Height
	})
	return out
}

// reportedQuality reads the quality query parameter of a stream URL.
func reportedQuality(streamURL string, fallback Quality) Quality {
	u, err := url.Parse(streamURL)
	if err != nil {
		return fallback
	}
	label := u.Query().Get("quality")
	if label == "" {
		return fallback
	}
	q, err := ParseQuality(label)
	if err != nil {
		return fallback
	}
	return q
}

// probe checks that a stream URL answers. HLS answers must be a playlist.
func (c *Client) probe(ctx context.Context, streamURL, streamType string) error {
	if streamType == StreamHLS {
		_, _, err := c.playlist(ctx, streamURL)
		return err
	}

	body, err := c.get(ctx, streamURL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()
	_, _ = io.Copy(io.Discard, body)
	return nil
}

// playlist fetches and decodes an HLS playlist.
func (c *Client) playlist(ctx context.Context, playlistURL string) (m3u8.Playlist, m3u8.ListType, error) {
	body, err := c.get(ctx, playlistURL)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = body.Close() }()

	pl, listType, err := m3u8.DecodeFrom(body, false)
	if err != nil {
		return nil, 0, fmt.Errorf("decode playlist: %w", err)
	}
	return pl, listType, nil
}

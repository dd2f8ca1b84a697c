package ivysilani

import (
	"context"
	"net/url"

	"github.com/grafov/m3u8"
)

// Variant is one rendition listed in an HLS master playlist.
type Variant struct {
	Bandwidth  uint32 `json:"bandwidth"`
	Resolution string `json:"resolution,omitempty"`
	Codecs     string `json:"codecs,omitempty"`
	URI        string `json:"uri"`
}

// Variants resolves the HLS stream for quality and lists the renditions of
// its master playlist. A media playlist is reported as a single variant.
func (p *playable) Variants(ctx context.Context, q Quality) ([]Variant, error) {
	streamURL, err := p.URL(ctx, q, StreamHLS)
	if err != nil {
		return nil, err
	}

	pl, listType, err := p.client.playlist(ctx, streamURL)
	if err != nil {
		return nil, err
	}
	if listType != m3u8.MASTER {
		return []Variant{{URI: streamURL}}, nil
	}

	master := pl.(*m3u8.MasterPlaylist)
	variants := make([]Variant, 0, len(master.Variants))
	for _, v := range master.Variants {
		if v == nil {
			continue
		}
		variants = append(variants, Variant{
			Bandwidth:  v.Bandwidth,
			Resolution: v.Resolution,
			Codecs:     v.Codecs,
			URI:        resolveReference(streamURL, v.URI),
		})
	}
	return variants, nil
}

// resolveReference makes a playlist URI absolute against the playlist URL.
func resolveReference(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

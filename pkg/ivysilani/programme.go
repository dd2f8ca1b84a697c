package ivysilani

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Names of the sub-lists attached to a programme.
const (
	listEpisodes = "episodes"
	listRelated  = "related"
	listBonuses  = "bonuses"
)

// Programme is a programme or episode record. Its fields are whatever tags
// the API sent; accessors cover the tags the client understands.
type Programme struct {
	Fields
	playable

	// SubtitlesAvailable is set when subtitles were written during construction.
	SubtitlesAvailable bool
}

func (c *Client) newProgramme(f Fields) *Programme {
	p := &Programme{Fields: f}
	p.client = c
	p.id = f.Value("ID")
	return p
}

// ProgrammeRef returns a programme known only by its ID. It can resolve
// streams and sub-lists without fetching the detail record.
func (c *Client) ProgrammeRef(id string) *Programme {
	var f Fields
	f.Set("ID", id)
	return c.newProgramme(f)
}

// ID returns the API identifier.
func (p *Programme) ID() string { return p.Value("ID") }

// Title returns the programme title.
func (p *Programme) Title() string { return p.Value("title") }

// Synopsis returns the programme description.
func (p *Programme) Synopsis() string { return p.Value("synopsis") }

// ImageURL returns the preview image URL.
func (p *Programme) ImageURL() string { return p.Value("imageURL") }

// WebURL returns the programme page on the broadcaster's site.
func (p *Programme) WebURL() string { return p.Value("webURL") }

// ChannelTitle returns the broadcasting channel name.
func (p *Programme) ChannelTitle() string { return p.Value("channelTitle") }

// Time returns the broadcast time as sent by the API.
func (p *Programme) Time() string { return p.Value("time") }

// Length returns the running time as sent by the API.
func (p *Programme) Length() string { return p.Value("length") }

// IsPlayable reports whether the API marks the programme as playable.
func (p *Programme) IsPlayable() bool {
	v := strings.ToLower(p.Value("isPlayable"))
	return v == "1" || v == "true"
}

// Programme fetches the detail record for id. An API error envelope is
// returned as *APIError. When subtitlesPath is set, subtitles are written
// there and SubtitlesAvailable records whether that worked.
func (c *Client) Programme(ctx context.Context, id, subtitlesPath string) (*Programme, error) {
	params := url.Values{
		"imageType": {strconv.Itoa(c.imageWidth)},
		"ID":        {id},
	}
	root, err := c.fetchXML(ctx, programmeDetailPath, params)
	if err != nil {
		return nil, fmt.Errorf("programme %s: %w", id, err)
	}

	p := c.newProgramme(root.fields())
	if p.id == "" {
		p.id = id
	}

	if subtitlesPath != "" {
		n, err := p.WriteSubtitles(ctx, subtitlesPath)
		if err != nil && !errors.Is(err, ErrNoSubtitles) && c.log != nil {
			c.log.Warn("subtitles failed", "id", id, "error", err)
		}
		p.SubtitlesAvailable = err == nil && n > 0
	}
	return p, nil
}

// Episodes returns a page of the programme's episodes. A pageSize of zero
// uses the client default.
func (p *Programme) Episodes(ctx context.Context, page, pageSize int) ([]*Programme, error) {
	return p.subList(ctx, listEpisodes, page, pageSize)
}

// Related returns a page of related programmes.
func (p *Programme) Related(ctx context.Context, page, pageSize int) ([]*Programme, error) {
	return p.subList(ctx, listRelated, page, pageSize)
}

// Bonuses returns a page of bonus videos.
func (p *Programme) Bonuses(ctx context.Context, page, pageSize int) ([]*Programme, error) {
	return p.subList(ctx, listBonuses, page, pageSize)
}

// subList fetches one page of a named sub-list. Transport and parse failures
// yield an empty list; API error envelopes are returned.
func (p *Programme) subList(ctx context.Context, name string, page, pageSize int) ([]*Programme, error) {
	c := p.client
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = c.pageSize
	}

	params := url.Values{}
	params.Set("ID", p.ID())
	params.Set("paging["+name+"][currentPage]", strconv.Itoa(page))
	params.Set("paging["+name+"][pageSize]", strconv.Itoa(pageSize))
	params.Set("imageType", strconv.Itoa(c.imageWidth))
	params.Set("type[0]", name)

	root, err := c.fetchXML(ctx, programmeListPath, params)
	if err != nil {
		if IsAPIError(err) {
			return nil, fmt.Errorf("%s of %s: %w", name, p.ID(), err)
		}
		if c.log != nil {
			c.log.Error("sub-list fetch failed", "list", name, "id", p.ID(), "error", err)
		}
		return []*Programme{}, nil
	}

	section := root.child(name)
	if section == nil {
		return []*Programme{}, nil
	}
	out := make([]*Programme, 0, len(section.Nodes))
	for i := range section.Nodes {
		if section.Nodes[i].name() != "programme" {
			continue
		}
		out = append(out, c.newProgramme(section.Nodes[i].fields()))
	}
	return out, nil
}

package ivysilani

import (
	"context"
	"net/url"
	"strconv"
	"sync"
)

// LiveChannel is a broadcast channel with a live stream.
type LiveChannel struct {
	Code      string
	Title     string
	Permanent bool

	playable

	mu        sync.Mutex
	programme *Programme
}

func (c *Client) newLiveChannel(code, title string, permanent bool) *LiveChannel {
	ch := &LiveChannel{Code: code, Title: title, Permanent: permanent}
	ch.client = c
	ch.id = "CT" + code
	return ch
}

// ID returns the playable identifier of the channel.
func (ch *LiveChannel) ID() string {
	return ch.id
}

// Programme returns what the channel is broadcasting. The first successful
// fetch is kept for the life of the channel and never refreshed.
//
// A transport failure returns (nil, nil); an API error envelope is returned.
// A channel title sent by the API replaces Title.
func (ch *LiveChannel) Programme(ctx context.Context) (*Programme, error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.programme != nil {
		return ch.programme, nil
	}

	c := ch.client
	params := url.Values{
		"imageType": {strconv.Itoa(c.imageWidth)},
		"current":   {"1"},
		"channel":   {ch.Code},
	}
	root, err := c.fetchXML(ctx, programmeListPath, params)
	if err != nil {
		if IsAPIError(err) {
			return nil, err
		}
		if c.log != nil {
			c.log.Warn("current programme unavailable", "channel", ch.Code, "error", err)
		}
		return nil, nil
	}

	// <programmes><channel><live><programme>... the record sits three levels down.
	item := root.firstDescendant(3)
	if item == nil {
		return nil, nil
	}

	p := c.newProgramme(item.fields())
	if title := p.ChannelTitle(); title != "" {
		ch.Title = title
	}
	ch.programme = p
	return p, nil
}

package ivysilani

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// List fetches the programmes l identifies. Any failure, including an API
// error envelope, is logged and yields an empty list.
func (c *Client) List(ctx context.Context, l Lister) []*Programme {
	start := time.Now()

	params := l.Params()
	params.Set("imageType", strconv.Itoa(c.imageWidth))

	root, err := c.fetchXML(ctx, programmeListPath, params)
	if err != nil {
		if c.log != nil {
			c.log.Error("programme list fetch failed", "params", params.Encode(), "error", err)
		}
		return []*Programme{}
	}

	programmes := make([]*Programme, 0, len(root.Nodes))
	for i := range root.Nodes {
		programmes = append(programmes, c.newProgramme(root.Nodes[i].fields()))
	}

	if c.log != nil {
		c.log.Debug("programme list fetched", "params", params.Encode(), "count", len(programmes), "duration_ms", time.Since(start).Milliseconds())
	}
	return programmes
}

// Genres returns the genre list. It is fetched on first use and cached for
// the life of the Client; a failed fetch caches nothing.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	c.listMu.Lock()
	defer c.listMu.Unlock()

	if c.genres != nil {
		return c.genres, nil
	}

	entries, err := c.fetchEntries(ctx, genreListPath)
	if err != nil {
		return nil, fmt.Errorf("fetch genres: %w", err)
	}
	genres := make([]Genre, 0, len(entries))
	for _, e := range entries {
		genres = append(genres, Genre{Title: e.title, Link: e.link})
	}
	c.genres = genres
	return genres, nil
}

// Alphabet returns the letter index, cached like Genres.
func (c *Client) Alphabet(ctx context.Context) ([]Letter, error) {
	c.listMu.Lock()
	defer c.listMu.Unlock()

	if c.alphabet != nil {
		return c.alphabet, nil
	}

	entries, err := c.fetchEntries(ctx, alphabetListPath)
	if err != nil {
		return nil, fmt.Errorf("fetch alphabet: %w", err)
	}
	letters := make([]Letter, 0, len(entries))
	for _, e := range entries {
		letters = append(letters, Letter{Title: e.title, Link: e.link})
	}
	c.alphabet = letters
	return letters, nil
}

type entry struct {
	title string
	link  string
}

// fetchEntries reads a static list of title/link pairs.
func (c *Client) fetchEntries(ctx context.Context, path string) ([]entry, error) {
	root, err := c.fetchXML(ctx, path, url.Values{})
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(root.Nodes))
	for i := range root.Nodes {
		item := &root.Nodes[i]
		var e entry
		if t := item.child("title"); t != nil {
			e.title = t.text()
		}
		if l := item.child("link"); l != nil {
			e.link = l.text()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

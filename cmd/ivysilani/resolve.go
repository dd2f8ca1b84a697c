package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
	"github.com/vmunix/ivysilani/pkg/titlematch"
)

// resolveChannel accepts a channel code ("24"), a playable ID ("CT24") or a
// name close to the channel title ("ct sport").
func resolveChannel(client *ivysilani.Client, arg string) (*ivysilani.LiveChannel, error) {
	if ch, ok := client.LiveChannel(arg); ok {
		return ch, nil
	}
	if code, ok := strings.CutPrefix(strings.ToUpper(arg), "CT"); ok {
		if ch, ok := client.LiveChannel(strings.ToLower(code)); ok {
			return ch, nil
		}
	}

	channels := client.LiveChannels()
	titles := make([]string, len(channels))
	for i, ch := range channels {
		titles[i] = ch.Title
	}
	m := titlematch.Match(arg, titles)
	if !m.Matched() {
		return nil, fmt.Errorf("unknown channel %q", arg)
	}
	return channels[m.Index], nil
}

func resolveSpotlight(arg string) (ivysilani.Spotlight, error) {
	spotlights := ivysilani.Spotlights()
	for _, s := range spotlights {
		if strings.EqualFold(s.ID, arg) {
			return s, nil
		}
	}

	labels := make([]string, len(spotlights))
	for i, s := range spotlights {
		labels[i] = s.Label
	}
	m := titlematch.Match(arg, labels)
	if !m.Matched() {
		return ivysilani.Spotlight{}, fmt.Errorf("unknown spotlight %q", arg)
	}
	return spotlights[m.Index], nil
}

func resolveGenre(ctx context.Context, client *ivysilani.Client, arg string) (ivysilani.Genre, error) {
	genres, err := client.Genres(ctx)
	if err != nil {
		return ivysilani.Genre{}, err
	}
	for _, g := range genres {
		if g.Link == arg {
			return g, nil
		}
	}

	titles := make([]string, len(genres))
	for i, g := range genres {
		titles[i] = g.Title
	}
	m := titlematch.Match(arg, titles)
	if !m.Matched() {
		return ivysilani.Genre{}, fmt.Errorf("unknown genre %q", arg)
	}
	return genres[m.Index], nil
}

// resolveLetter picks the index letter for arg. Letters compare with their
// diacritics first so "Č" does not land on "C".
func resolveLetter(ctx context.Context, client *ivysilani.Client, arg string) (ivysilani.Letter, error) {
	letters, err := client.Alphabet(ctx)
	if err != nil {
		return ivysilani.Letter{}, err
	}
	for _, l := range letters {
		if strings.EqualFold(l.Title, arg) || l.Link == arg {
			return l, nil
		}
	}
	want := titlematch.Clean(arg)
	for _, l := range letters {
		if titlematch.Clean(l.Title) == want {
			return l, nil
		}
	}
	return ivysilani.Letter{}, fmt.Errorf("unknown letter %q", arg)
}

// letterFor picks the index letter a title is filed under: the longest
// letter title that prefixes it, so "Chalupa" lands on "Ch" rather than "C".
func letterFor(letters []ivysilani.Letter, title string) (ivysilani.Letter, bool) {
	var best ivysilani.Letter
	found := false
	pick := func(l ivysilani.Letter) {
		if !found || len([]rune(l.Title)) > len([]rune(best.Title)) {
			best, found = l, true
		}
	}

	lower := strings.ToLower(strings.TrimSpace(title))
	for _, l := range letters {
		if t := strings.ToLower(l.Title); t != "" && strings.HasPrefix(lower, t) {
			pick(l)
		}
	}
	if found {
		return best, true
	}

	cleaned := titlematch.Clean(title)
	for _, l := range letters {
		if t := titlematch.Clean(l.Title); t != "" && strings.HasPrefix(cleaned, t) {
			pick(l)
		}
	}
	return best, found
}

package ivysilani

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	subtitlesSuffix = "/titulky"

	// readingSpeed is the characters per second used to estimate when a caption ends.
	readingSpeed = 14
)

// Caption is one subtitle line.
type Caption struct {
	Start time.Duration
	Text  string
}

// End estimates when the caption leaves the screen.
func (c Caption) End() time.Duration {
	n := utf8.RuneCountInString(c.Text)
	secs := (n + readingSpeed - 1) / readingSpeed
	return c.Start + time.Duration(secs)*time.Second
}

// WriteSubtitles scrapes the programme's subtitle page and writes the captions
// to outputPath as a numbered subtitle track. It returns the caption count.
// A page without captions returns ErrNoSubtitles and writes nothing.
func (p *Programme) WriteSubtitles(ctx context.Context, outputPath string) (int, error) {
	captions, err := p.Captions(ctx)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := WriteSRT(&buf, captions); err != nil {
		return 0, err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("write subtitles: %w", err)
	}

	if p.client.log != nil {
		p.client.log.Debug("subtitles written", "id", p.ID(), "path", outputPath, "captions", len(captions))
	}
	return len(captions), nil
}

// Captions scrapes the programme's subtitle page.
func (p *Programme) Captions(ctx context.Context) ([]Caption, error) {
	web := p.WebURL()
	if web == "" {
		return nil, fmt.Errorf("%s: %w: no web url", p.ID(), ErrNoSubtitles)
	}

	body, err := p.client.get(ctx, strings.TrimSuffix(web, "/")+subtitlesSuffix)
	if err != nil {
		return nil, fmt.Errorf("fetch subtitles page: %w", err)
	}
	defer func() { _ = body.Close() }()

	captions, err := parseCaptions(body)
	if err != nil {
		return nil, err
	}
	if len(captions) == 0 {
		return nil, fmt.Errorf("%s: %w", p.ID(), ErrNoSubtitles)
	}
	return captions, nil
}

// parseCaptions reads the first #subtitles list. Each <li> holds a link with
// the start time followed by the caption text.
func parseCaptions(r io.Reader) ([]Caption, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse subtitles page: %w", err)
	}

	var captions []Caption
	doc.Find("#subtitles").First().Find("li").Each(func(_ int, li *goquery.Selection) {
		start, err := parseClock(li.Find("a").First().Text())
		if err != nil {
			return
		}
		captions = append(captions, Caption{Start: start, Text: ownText(li)})
	})
	return captions, nil
}

// ownText joins the text nodes directly under s, skipping child elements.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return strings.TrimSpace(b.String())
}

// WriteSRT writes captions as numbered blocks separated by blank lines.
func WriteSRT(w io.Writer, captions []Caption) error {
	for i, c := range captions {
		_, err := fmt.Fprintf(w, "%d\n%s,000 --> %s,000\n%s\n\n", i+1, formatClock(c.Start), formatClock(c.End()), c.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

// parseClock parses HH:MM:SS into an offset.
func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

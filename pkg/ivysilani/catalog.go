package ivysilani

import (
	"fmt"
	"net/url"
	"time"
)

// Lister identifies a programme list to fetch.
type Lister interface {
	Params() url.Values
}

// Spotlight is an editorial selection such as "most watched today".
type Spotlight struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Params implements Lister.
func (s Spotlight) Params() url.Values {
	return url.Values{"spotlight": {s.ID}}
}

// Genre is an entry of the genre list.
type Genre struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Params implements Lister.
func (g Genre) Params() url.Values {
	return url.Values{"genre": {g.Link}}
}

// Letter is an entry of the alphabet list.
type Letter struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Params implements Lister.
func (l Letter) Params() url.Values {
	return url.Values{"letter": {l.Link}}
}

// DateLayout is the layout of broadcast dates.
const DateLayout = "2006-01-02"

// minDate is the first day the archive covers.
const minDate = "2005-02-01"

// DateListing is the schedule of one channel on one day.
type DateListing struct {
	Date    string `json:"date"`
	Channel string `json:"channel"`
}

// NewDateListing validates date and binds it to a channel.
func NewDateListing(date string, channel *LiveChannel) (DateListing, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return DateListing{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, date)
	}
	earliest, _ := time.Parse(DateLayout, minDate)
	if d.Before(earliest) {
		return DateListing{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDate, date, minDate)
	}
	return DateListing{Date: date, Channel: channel.Code}, nil
}

// Params implements Lister.
func (d DateListing) Params() url.Values {
	return url.Values{"date": {d.Date}, "channel": {d.Channel}}
}

// Spotlights returns the editorial selections the API knows.
func Spotlights() []Spotlight {
	return []Spotlight{
		{ID: "tipsMain", Label: "Tipy"},
		{ID: "topDay", Label: "Nejsledovanější dne"},
		{ID: "topWeek", Label: "Nejsledovanější týdne"},
		{ID: "tipsNote", Label: "Nepřehlédněte"},
		{ID: "tipsArchive", Label: "Z našeho archivu"},
		{ID: "watching", Label: "Ostatní právě sledují"},
	}
}

type channelSpec struct {
	code      string
	title     string
	permanent bool
}

var liveChannels = []channelSpec{
	{"1", "ČT1", true},
	{"2", "ČT2", true},
	{"24", "ČT24", true},
	{"4", "ČT Sport", true},
	{"5", "ČT :D", true},
	{"6", "ČT art", true},
	{"9", "", false},
	{"25", "", false},
	{"26", "", false},
	{"27", "", false},
	{"28", "", false},
	{"29", "", false},
	{"mobile", "", false},
	{"mobile2", "", false},
	{"mobile03", "", false},
	{"mobile04", "", false},
	{"mobile05", "", false},
}

// LiveChannels returns the live channel catalogue. The same objects are
// returned on every call so their programme caches live as long as the Client.
func (c *Client) LiveChannels() []*LiveChannel {
	c.channelsOnce.Do(func() {
		c.channels = make([]*LiveChannel, 0, len(liveChannels))
		for _, spec := range liveChannels {
			c.channels = append(c.channels, c.newLiveChannel(spec.code, spec.title, spec.permanent))
		}
	})
	out := make([]*LiveChannel, len(c.channels))
	copy(out, c.channels)
	return out
}

// LiveChannel returns the catalogue channel with the given code.
func (c *Client) LiveChannel(code string) (*LiveChannel, bool) {
	for _, ch := range c.LiveChannels() {
		if ch.Code == code {
			return ch, true
		}
	}
	return nil, false
}

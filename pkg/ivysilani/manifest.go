package ivysilani

// manifest is the stream-data response of the video API.
type manifest struct {
	Streams []struct {
		URL string `json:"url"`
	} `json:"streams"`
	StreamURLs struct {
		Main string `json:"main"`
	} `json:"streamUrls"`
}

// streamURL returns the first stream URL, falling back to streamUrls.main.
func (m manifest) streamURL() string {
	for _, s := range m.Streams {
		if s.URL != "" {
			return s.URL
		}
	}
	return m.StreamURLs.Main
}

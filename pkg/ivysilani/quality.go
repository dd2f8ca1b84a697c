package ivysilani

import (
	"fmt"
	"strconv"
	"strings"
)

// Named heights.
const (
	heightMobile = 144
	heightWeb    = 576
	heightAD     = -1
)

// Quality is a stream quality tier identified by its picture height.
// Two qualities are equal when their normalized labels are equal, which is
// exactly when their heights are, so Quality is usable as a map key.
type Quality struct {
	Height int
}

// Named qualities.
var (
	QualityMobile = Quality{Height: heightMobile}
	QualityWeb    = Quality{Height: heightWeb}
	QualityAD     = Quality{Height: heightAD}
)

// probeLabels is the order AvailableQualities walks the tiers in.
var probeLabels = []string{"mobile", "288p", "404p", "web", "720p", "1080p"}

// Qualities returns the tiers the backend is probed for, lowest first.
func Qualities() []Quality {
	out := make([]Quality, 0, len(probeLabels))
	for _, label := range probeLabels {
		out = append(out, MustParseQuality(label))
	}
	return out
}

// ParseQuality parses "mobile", "web", "AD", "720p" or a bare height like "720".
func ParseQuality(label string) (Quality, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	switch s {
	case "mobile":
		return QualityMobile, nil
	case "web":
		return QualityWeb, nil
	case "ad":
		return QualityAD, nil
	}

	h, err := strconv.Atoi(strings.TrimSuffix(s, "p"))
	if err != nil || h <= 0 {
		return Quality{}, fmt.Errorf("%w: %q", ErrUnknownQuality, label)
	}
	return Quality{Height: h}, nil
}

// MustParseQuality is ParseQuality that panics on error.
func MustParseQuality(label string) Quality {
	q, err := ParseQuality(label)
	if err != nil {
		panic(err)
	}
	return q
}

// QualityFromHeight returns the tier for a picture height.
func QualityFromHeight(height int) Quality {
	return Quality{Height: height}
}

// String returns the normalized label the manifest API expects.
func (q Quality) String() string {
	switch q.Height {
	case heightWeb:
		return "web"
	case heightMobile:
		return "mobile"
	case heightAD:
		return "AD"
	}
	return strconv.Itoa(q.Height) + "p"
}

// Label returns the height label, e.g. "576p".
func (q Quality) Label() string {
	if q.Height == heightAD {
		return "AD"
	}
	return strconv.Itoa(q.Height) + "p"
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

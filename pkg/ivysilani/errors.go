package ivysilani

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the client.
var (
	ErrNoData            = errors.New("no data")
	ErrNoStream          = errors.New("manifest has no stream url")
	ErrDRMOnly           = errors.New("stream is only available with DRM")
	ErrStreamUnavailable = errors.New("stream url is not reachable")
	ErrNoSubtitles       = errors.New("no subtitles")
	ErrInvalidDate       = errors.New("invalid date")
	ErrUnknownQuality    = errors.New("unknown quality")
)

// Messages the API uses when the token is missing or stale.
const (
	msgNoToken    = "no token sent"
	msgWrongToken = "wrong token"
)

// APIError is an <errors> envelope returned by the XML API.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// TokenInvalid reports whether the API rejected the request token.
func (e *APIError) TokenInvalid() bool {
	if len(e.Messages) == 0 {
		return false
	}
	return e.Messages[0] == msgNoToken || e.Messages[0] == msgWrongToken
}

// IsAPIError reports whether err carries an API error envelope.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
)

func TestResolveChannel(t *testing.T) {
	client := ivysilani.New()

	tests := []struct {
		arg  string
		want string
	}{
		{"24", "CT24"},
		{"CT24", "CT24"},
		{"ct2", "CT2"},
		{"CTmobile", "CTmobile"},
		{"čt sport", "CT4"},
		{"CT art", "CT6"},
		{"ct :d", "CT5"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			ch, err := resolveChannel(client, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ch.ID())
		})
	}

	_, err := resolveChannel(client, "nova")
	assert.Error(t, err)
}

func TestResolveSpotlight(t *testing.T) {
	s, err := resolveSpotlight("TIPSMAIN")
	require.NoError(t, err)
	assert.Equal(t, "tipsMain", s.ID)

	s, err = resolveSpotlight("z naseho archivu")
	require.NoError(t, err)
	assert.Equal(t, "tipsArchive", s.ID)

	_, err = resolveSpotlight("qqqq")
	assert.Error(t, err)
}

func TestLetterFor(t *testing.T) {
	letters := []ivysilani.Letter{
		{Title: "C", Link: "C"},
		{Title: "Č", Link: "Č"},
		{Title: "Ch", Link: "CH"},
		{Title: "0-9", Link: "0"},
	}

	tests := []struct {
		title string
		want  string
		found bool
	}{
		{"Chalupa je hra", "CH", true},
		{"Cirkus Humberto", "C", true},
		{"Četnické humoresky", "Č", true},
		{"cetnicke humoresky", "C", true},
		{"Zprávy", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			l, ok := letterFor(letters, tt.title)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, l.Link)
		})
	}
}

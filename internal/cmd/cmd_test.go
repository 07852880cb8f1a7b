package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	galleryremote "github.com/anitschke/go-galleryremote"
)

func TestParseGalleryType(t *testing.T) {
	type testData struct {
		description string
		in          string
		want        galleryremote.GalleryType
		wantErr     bool
	}

	tests := []testData{
		{"g1", "g1", galleryremote.GalleryTypeG1, false},
		{"g2", "g2", galleryremote.GalleryTypeG2, false},
		{"g2 xmlrpc", "g2-xmlrpc", galleryremote.GalleryTypeG2XMLRPC, false},
		{"uppercase", "G1", galleryremote.GalleryTypeG1, false},
		{"unknown", "g3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := parseGalleryType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyringKey(t *testing.T) {
	opts := &rootOptions{url: "http://gallery.example/gallery/", username: "zach"}
	assert.Equal(t, "zach@gallery.example", keyringKey(opts))
}

func TestNewSessionRequiresURLAndUsername(t *testing.T) {
	_, err := newSession(&rootOptions{username: "zach"})
	assert.ErrorContains(t, err, "--url")

	_, err = newSession(&rootOptions{url: "http://gallery.example/"})
	assert.ErrorContains(t, err, "--username")
}

func TestItemFromFileUnreadable(t *testing.T) {
	_, err := itemFromFile("/does/not/exist.jpg", "", "")
	assert.Error(t, err)
}

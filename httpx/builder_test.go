package httpx

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestURLEncodedRoundTrip(t *testing.T) {
	fields := map[string]string{
		"cmd":              "login",
		"protocol_version": "2.9",
		"uname":            "user name",
		"password":         "p&ss=word:with symbols",
		"empty":            "",
	}

	b := NewRequestBuilder(URLEncoded, nil)
	for name, value := range fields {
		require.NoError(t, b.AddString(name, value))
	}

	body, contentType, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)

	decoded, err := url.ParseQuery(string(body))
	require.NoError(t, err)
	for name, value := range fields {
		assert.Equal(t, value, decoded.Get(name), "field %q", name)
	}
}

func TestURLEncodedPreservesInsertionOrder(t *testing.T) {
	b := NewRequestBuilder(URLEncoded, nil)
	require.NoError(t, b.AddString("zzz", "1"))
	require.NoError(t, b.AddString("aaa", "2"))

	body, _, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "zzz=1&aaa=2", string(body))
}

func TestURLEncodedRejectsData(t *testing.T) {
	b := NewRequestBuilder(URLEncoded, nil)
	err := b.AddData([]byte("bytes"), "userfile", "img.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrDataNeedsMultipart)
}

func TestMultipartRoundTrip(t *testing.T) {
	fileBytes := []byte{0xFF, 0xD8, 0x00, 0x01, '\r', '\n', '-', '-'}

	b := NewRequestBuilder(Multipart, nil)
	require.NoError(t, b.AddString("cmd", "add-item"))
	require.NoError(t, b.AddString("set_albumName", "vacation"))
	require.NoError(t, b.AddData(fileBytes, "userfile", "beach.jpg", "image/jpeg"))

	body, contentType, err := b.Finalize()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	mr := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])

	got := map[string][]byte{}
	var gotFilename, gotContentType string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		got[part.FormName()] = data
		if part.FormName() == "userfile" {
			gotFilename = part.FileName()
			gotContentType = part.Header.Get("Content-Type")
		}
	}

	assert.Equal(t, []byte("add-item"), got["cmd"])
	assert.Equal(t, []byte("vacation"), got["set_albumName"])
	assert.Equal(t, fileBytes, got["userfile"])
	assert.Equal(t, "beach.jpg", gotFilename)
	assert.Equal(t, "image/jpeg", gotContentType)
}

func TestContentLengthMatchesBody(t *testing.T) {
	type testData struct {
		description string
		variation   Variation
	}

	tests := []testData{
		{"url encoded", URLEncoded},
		{"multipart", Multipart},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			b := NewRequestBuilder(tt.variation, nil)
			require.NoError(t, b.AddString("cmd", "login"))
			require.NoError(t, b.AddString("uname", "user"))
			if tt.variation == Multipart {
				require.NoError(t, b.AddData([]byte("data"), "userfile", "f.bin", "application/octet-stream"))
			}

			req, err := b.NewRequest(context.Background(), "http://gallery.example/gallery_remote2.php")
			require.NoError(t, err)

			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, int64(len(body)), req.ContentLength)
		})
	}
}

func TestFieldValuesUseSessionEncoding(t *testing.T) {
	b := NewRequestBuilder(URLEncoded, charmap.Windows1252)
	require.NoError(t, b.AddString("newAlbumTitle", "café"))

	body, _, err := b.Finalize()
	require.NoError(t, err)

	// 0xE9 is latin-1 e-acute; it must be percent-encoded as a single byte,
	// not as the two-byte UTF-8 sequence.
	assert.Equal(t, "newAlbumTitle=caf%E9", string(body))
}

func TestBoundaryDoesNotCollideWithFileBytes(t *testing.T) {
	b := NewRequestBuilder(Multipart, nil)
	require.NoError(t, b.AddData([]byte(strings.Repeat("--X\r\n", 100)), "userfile", "f.bin", "application/octet-stream"))

	body, contentType, err := b.Finalize()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	mr := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	part, err := mr.NextPart()
	require.NoError(t, err)
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Len(t, data, 500)

	_, err = mr.NextPart()
	assert.Equal(t, io.EOF, err)
}

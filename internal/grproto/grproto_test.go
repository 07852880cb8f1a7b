package grproto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	type testData struct {
		description string
		body        string
		want        Fields
	}

	tests := []testData{
		{
			description: "simple response",
			body:        "status:0\nstatus_text:Login successful\n",
			want:        Fields{"status": "0", "status_text": "Login successful"},
		},
		{
			description: "only first colon splits",
			body:        "url:http://gallery.example/albums\n",
			want:        Fields{"url": "http://gallery.example/albums"},
		},
		{
			description: "empty value",
			body:        "album.summary.1:\nstatus:0\n",
			want:        Fields{"album.summary.1": "", "status": "0"},
		},
		{
			description: "blank lines and html noise ignored",
			body:        "<html><body>\n\nstatus:0\n\n</body></html>\n",
			want:        Fields{"status": "0"},
		},
		{
			description: "crlf line endings",
			body:        "status:0\r\nserver_version:2.9\r\n",
			want:        Fields{"status": "0", "server_version": "2.9"},
		},
		{
			description: "later duplicate wins",
			body:        "status:1\nstatus:0\n",
			want:        Fields{"status": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := Decode(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeOverlongLine(t *testing.T) {
	// A single line past the scanner's buffer limit must fail the whole
	// decode, not hand back whatever fields happened to come before it.
	body := "status:0\nstatus_text:" + strings.Repeat("x", 2*1024*1024) + "\nserver_version:2.9\n"

	fields, err := Decode(body)
	assert.Error(t, err)
	assert.Nil(t, fields)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fields := Fields{
		"status":         "0",
		"server_version": "2.9",
		"album.name.1":   "vacation",
		"album.title.1":  "Summer Vacation",
	}

	got, err := Decode(fields.Encode())
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}

func TestStatus(t *testing.T) {
	type testData struct {
		description string
		fields      Fields
		want        int
		wantOK      bool
	}

	tests := []testData{
		{"success", Fields{"status": "0"}, 0, true},
		{"server failure code", Fields{"status": "201"}, 201, true},
		{"padded", Fields{"status": " 103 "}, 103, true},
		{"missing", Fields{"status_text": "hi"}, 0, false},
		{"not a number", Fields{"status": "ok"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, ok := tt.fields.Status()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAlbumRecords(t *testing.T) {
	body := "status:0\n" +
		"album_count:3\n" +
		"album.name.1:wedding\n" +
		"album.title.1:Wedding\n" +
		"album.summary.1:Our wedding photos\n" +
		"album.parent.1:0\n" +
		"album.perms.add.1:true\n" +
		"album.perms.create_sub.1:true\n" +
		"album.name.2:reception\n" +
		"album.title.2:Reception\n" +
		"album.parent.2:wedding\n" +
		"album.perms.add.2:1\n" +
		"album.perms.create_sub.2:false\n" +
		"album.name.3:honeymoon\n" +
		"album.title.3:Honeymoon\n" +
		"album.parent.3:\n" +
		"album.perms.add.3:no\n"

	fields, err := Decode(body)
	require.NoError(t, err)
	records := fields.AlbumRecords()
	require.Len(t, records, 3)

	assert.Equal(t, AlbumRecord{
		Name:         "wedding",
		Title:        "Wedding",
		Summary:      "Our wedding photos",
		Parent:       "",
		CanAdd:       true,
		CanCreateSub: true,
	}, records[0])

	assert.Equal(t, "reception", records[1].Name)
	assert.Equal(t, "wedding", records[1].Parent)
	assert.True(t, records[1].CanAdd)
	assert.False(t, records[1].CanCreateSub)

	assert.Equal(t, "honeymoon", records[2].Name)
	assert.Equal(t, "", records[2].Parent)
	assert.False(t, records[2].CanAdd)
}

func TestAlbumRecordsStopAtGap(t *testing.T) {
	fields := Fields{
		"album_count":  "5",
		"album.name.1": "a",
		"album.name.3": "c", // index 2 missing ends the listing
	}
	records := fields.AlbumRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Name)
}

func TestAlbumRecordsWithoutCount(t *testing.T) {
	fields := Fields{
		"album.name.1": "a",
		"album.name.2": "b",
	}
	records := fields.AlbumRecords()
	require.Len(t, records, 2)
}

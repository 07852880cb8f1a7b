// Package grproto decodes the line-oriented responses of the Gallery Remote
// form protocol ("G1"). A response body is a sequence of key:value lines,
// possibly surrounded by HTML noise the server's PHP layer leaks around the
// payload; only the first colon on a line separates key from value.
package grproto

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StatusKey is the mandatory field every protocol response carries.
const StatusKey = "status"

// StatusTextKey optionally carries a human-readable server message.
const StatusTextKey = "status_text"

// Fields is the decoded key/value mapping of one response.
type Fields map[string]string

// Decode parses a G1 response body. Blank lines and lines without a colon are
// ignored; the latter tolerance matters because real servers prepend HTML
// fragments to the payload. Later duplicate keys win. A body the scanner
// cannot finish (a line past the buffer limit) is undecodable rather than
// silently truncated.
func Decode(body string) (Fields, error) {
	fields := Fields{}
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan response body: %w", err)
	}
	return fields, nil
}

// Encode serializes fields back to the wire form, keys sorted for
// determinism. Inverse of Decode for colon-free keys and newline-free values.
func (f Fields) Encode() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%s\n", k, f[k])
	}
	return b.String()
}

// Status extracts the mandatory numeric status field. The boolean is false if
// the field is absent or not a number.
func (f Fields) Status() (int, bool) {
	raw, ok := f[StatusKey]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// AlbumRecord is one flat album entry from a fetch-albums response. Parent is
// the referenced parent album's name; empty or "0" means top level.
type AlbumRecord struct {
	Name         string
	Title        string
	Summary      string
	Parent       string
	CanAdd       bool
	CanCreateSub bool
}

// AlbumRecords extracts the numbered album.* field groups of an album-listing
// response, in index order. Indexing is 1-based on the wire; gaps end the
// listing. Entries without a name are skipped.
func (f Fields) AlbumRecords() []AlbumRecord {
	count := len(f) // hard upper bound on how many records the fields can hold
	if raw, ok := f["album_count"]; ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			count = n
		}
	}

	var records []AlbumRecord
	for i := 1; i <= count; i++ {
		name, ok := f[fmt.Sprintf("album.name.%d", i)]
		if !ok {
			break
		}
		if name == "" {
			continue
		}
		records = append(records, AlbumRecord{
			Name:         name,
			Title:        f[fmt.Sprintf("album.title.%d", i)],
			Summary:      f[fmt.Sprintf("album.summary.%d", i)],
			Parent:       normalizeParent(f[fmt.Sprintf("album.parent.%d", i)]),
			CanAdd:       parseBool(f[fmt.Sprintf("album.perms.add.%d", i)]),
			CanCreateSub: parseBool(f[fmt.Sprintf("album.perms.create_sub.%d", i)]),
		})
	}
	return records
}

func normalizeParent(p string) string {
	if p == "0" {
		return ""
	}
	return p
}

// parseBool accepts the truth spellings different gallery versions emit.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

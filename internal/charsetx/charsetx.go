// Package charsetx sniffs the text encoding used by a gallery server's
// responses. Older Gallery installs run in non-UTF-8 locales and answer in
// whatever charset PHP happens to be configured with, so the encoding has to
// be inferred from the response itself rather than assumed.
package charsetx

import (
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sniff determines the text encoding of a response body. The Content-Type
// header's charset parameter wins if present and recognized; otherwise the
// body bytes are inspected (BOM, meta tags, byte-distribution heuristics).
// The fallback is UTF-8, which is also what certain is false for.
func Sniff(body []byte, contentType string) (enc encoding.Encoding, name string, certain bool) {
	enc, name, certain = charset.DetermineEncoding(body, contentType)
	if enc == nil {
		return unicode.UTF8, "utf-8", false
	}
	return enc, name, certain
}

// Lookup resolves a charset label (as found in a Content-Type header) to an
// encoding. Unknown labels fall back to UTF-8.
func Lookup(label string) (encoding.Encoding, string) {
	if enc, name := charset.Lookup(label); enc != nil {
		return enc, name
	}
	return unicode.UTF8, "utf-8"
}

// EncodeString converts a UTF-8 string to the given encoding's bytes.
// Characters the target encoding cannot represent are replaced by the
// encoding's substitution byte rather than failing the whole request.
func EncodeString(enc encoding.Encoding, s string) ([]byte, error) {
	if enc == nil || enc == unicode.UTF8 {
		return []byte(s), nil
	}
	out, _, err := transform.Bytes(encoding.ReplaceUnsupported(enc.NewEncoder()), []byte(s))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBytes converts bytes in the given encoding to a UTF-8 string.
func DecodeBytes(enc encoding.Encoding, b []byte) (string, error) {
	if enc == nil || enc == unicode.UTF8 {
		return string(b), nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

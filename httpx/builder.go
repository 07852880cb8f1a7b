package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/anitschke/go-galleryremote/internal/charsetx"
	"golang.org/x/text/encoding"
)

// Variation selects how a RequestBuilder encodes the POST body.
type Variation int

const (
	// URLEncoded produces an application/x-www-form-urlencoded body.
	URLEncoded Variation = iota
	// Multipart produces a multipart/form-data body with a random boundary.
	Multipart
)

// ErrDataNeedsMultipart is returned by AddData when the builder is in
// URL-encoded mode; file payloads have no form-urlencoded representation.
var ErrDataNeedsMultipart = errors.New("file data can only be added to a multipart request")

// RequestBuilder assembles a POST body out of named string fields and at most
// one file payload. Field values are transcoded to the session's text encoding
// before any percent- or MIME-encoding, since old gallery servers expect
// request text in whatever charset they answer in.
//
// The zero value is not usable; call NewRequestBuilder.
type RequestBuilder struct {
	variation Variation
	enc       encoding.Encoding

	form bytes.Buffer // URLEncoded: fields joined with &, in insertion order

	body *bytes.Buffer     // Multipart
	mw   *multipart.Writer // Multipart
}

// NewRequestBuilder returns a builder for the given body variation. enc is the
// text encoding for field values; nil means UTF-8 passthrough.
func NewRequestBuilder(variation Variation, enc encoding.Encoding) *RequestBuilder {
	b := &RequestBuilder{
		variation: variation,
		enc:       enc,
	}
	if variation == Multipart {
		b.body = &bytes.Buffer{}
		b.mw = multipart.NewWriter(b.body)
	}
	return b
}

// AddString appends a plain form field.
func (b *RequestBuilder) AddString(name, value string) error {
	encoded, err := charsetx.EncodeString(b.enc, value)
	if err != nil {
		return fmt.Errorf("failed to encode field %q: %w", name, err)
	}

	switch b.variation {
	case URLEncoded:
		if b.form.Len() > 0 {
			b.form.WriteByte('&')
		}
		b.form.WriteString(url.QueryEscape(name))
		b.form.WriteByte('=')
		b.form.WriteString(url.QueryEscape(string(encoded)))
		return nil
	case Multipart:
		w, err := b.mw.CreateFormField(name)
		if err != nil {
			return err
		}
		_, err = w.Write(encoded)
		return err
	default:
		return fmt.Errorf("unknown request variation %d", b.variation)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// AddData appends a file part with the given field name, filename, and
// content type. Only valid for multipart builders.
func (b *RequestBuilder) AddData(data []byte, name, filename, contentType string) error {
	if b.variation != Multipart {
		return ErrDataNeedsMultipart
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	w, err := b.mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Finalize closes the body and returns its exact bytes along with the
// Content-Type header value to send. The returned length of body is what must
// go in Content-Length; no further fields may be added.
func (b *RequestBuilder) Finalize() (body []byte, contentType string, err error) {
	switch b.variation {
	case URLEncoded:
		return b.form.Bytes(), "application/x-www-form-urlencoded", nil
	case Multipart:
		if err := b.mw.Close(); err != nil {
			return nil, "", err
		}
		return b.body.Bytes(), b.mw.FormDataContentType(), nil
	default:
		return nil, "", fmt.Errorf("unknown request variation %d", b.variation)
	}
}

// NewRequest finalizes the body and wraps it in a POST request to endpoint
// with Content-Type and Content-Length set.
func (b *RequestBuilder) NewRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	body, contentType, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create gallery request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))
	return req, nil
}

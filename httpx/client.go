// Package httpx contains the small HTTP layer the gallery client is built on:
// a pluggable transport interface and a request-body builder that speaks the
// two POST encodings the Gallery Remote protocol uses.
package httpx

import (
	"fmt"
	"io"
	"net/http"
)

// Client is an interface for an http.Client from the standard library that
// allows us to more easily extend and/or mock out the real client. The gallery
// client issues at most one request at a time through it.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError returns an error describing a non-2xx HTTP response, consuming
// what it can of the body for the message. It returns nil for 2xx responses.
func StatusError(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("http status: %s: body: %s", resp.Status, body)
	}
	return nil
}

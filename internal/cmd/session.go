package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/99designs/keyring"

	galleryremote "github.com/anitschke/go-galleryremote"
)

const keyringService = "galleryremote"

// session wires a client to channel-backed delegate callbacks so the CLI can
// run the asynchronous operations synchronously.
type session struct {
	client *galleryremote.Client
	events *events
	opts   *rootOptions
}

type albumsResult struct {
	status  galleryremote.StatusCode
	tree    *galleryremote.AlbumTree
	dropped []galleryremote.AlbumRecord
}

type createResult struct {
	status galleryremote.StatusCode
	name   string
}

type events struct {
	login   chan galleryremote.StatusCode
	albums  chan albumsResult
	created chan createResult
}

func newEvents() *events {
	return &events{
		login:   make(chan galleryremote.StatusCode, 1),
		albums:  make(chan albumsResult, 1),
		created: make(chan createResult, 1),
	}
}

func (e *events) GalleryDidLogin(g *galleryremote.Client) {
	e.login <- galleryremote.StatusSuccess
}

func (e *events) GalleryLoginFailed(g *galleryremote.Client, status galleryremote.StatusCode) {
	e.login <- status
}

func (e *events) GalleryDidGetAlbums(g *galleryremote.Client, albums *galleryremote.AlbumTree, dropped []galleryremote.AlbumRecord) {
	e.albums <- albumsResult{status: galleryremote.StatusSuccess, tree: albums, dropped: dropped}
}

func (e *events) GalleryGetAlbumsFailed(g *galleryremote.Client, status galleryremote.StatusCode) {
	e.albums <- albumsResult{status: status}
}

func (e *events) GalleryDidCreateAlbum(g *galleryremote.Client, name string) {
	e.created <- createResult{status: galleryremote.StatusSuccess, name: name}
}

func (e *events) GalleryCreateAlbumFailed(g *galleryremote.Client, status galleryremote.StatusCode) {
	e.created <- createResult{status: status}
}

func parseGalleryType(s string) (galleryremote.GalleryType, error) {
	switch s {
	case "g1", "G1":
		return galleryremote.GalleryTypeG1, nil
	case "g2", "G2":
		return galleryremote.GalleryTypeG2, nil
	case "g2-xmlrpc", "G2-XMLRPC":
		return galleryremote.GalleryTypeG2XMLRPC, nil
	default:
		return 0, fmt.Errorf("unknown gallery type %q (want g1, g2, or g2-xmlrpc)", s)
	}
}

func newSession(opts *rootOptions) (*session, error) {
	if opts.url == "" {
		return nil, errors.New("--url is required")
	}
	if opts.username == "" {
		return nil, errors.New("--username is required")
	}
	typ, err := parseGalleryType(opts.galleryType)
	if err != nil {
		return nil, err
	}

	password, err := resolvePassword(opts)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	ev := newEvents()
	client, err := galleryremote.NewClient(galleryremote.Config{
		URL:      opts.url,
		Username: opts.username,
		Password: password,
		Type:     typ,
		Delegate: ev,
		Logger:   &logger,
	})
	if err != nil {
		return nil, err
	}

	return &session{client: client, events: ev, opts: opts}, nil
}

func resolvePassword(opts *rootOptions) (string, error) {
	if opts.password != "" {
		return opts.password, nil
	}
	if p := os.Getenv("GALLERY_PASSWORD"); p != "" {
		return p, nil
	}
	if opts.noKeyring {
		return "", errors.New("no password given (use --password or $GALLERY_PASSWORD)")
	}
	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return "", fmt.Errorf("failed to open keyring: %w", err)
	}
	item, err := ring.Get(keyringKey(opts))
	if err != nil {
		return "", fmt.Errorf("no password given and none stored in the keyring (run login --save-password first): %w", err)
	}
	return string(item.Data), nil
}

func savePassword(opts *rootOptions, password string) error {
	ring, err := keyring.Open(keyring.Config{ServiceName: keyringService})
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	return ring.Set(keyring.Item{
		Key:   keyringKey(opts),
		Data:  []byte(password),
		Label: "Gallery password for " + opts.username,
	})
}

func keyringKey(opts *rootOptions) string {
	host := opts.url
	if u, err := url.Parse(opts.url); err == nil && u.Host != "" {
		host = u.Host
	}
	return opts.username + "@" + host
}

func statusError(op string, status galleryremote.StatusCode) error {
	return fmt.Errorf("%s failed: %s (status %d)", op, status, int(status))
}

// login runs the asynchronous login to completion.
func (s *session) login() error {
	if err := s.client.Login(); err != nil {
		return err
	}
	if status := <-s.events.login; !status.OK() {
		return statusError("login", status)
	}
	return nil
}

// getAlbums runs the asynchronous album listing to completion.
func (s *session) getAlbums() (*galleryremote.AlbumTree, []galleryremote.AlbumRecord, error) {
	if err := s.client.GetAlbums(); err != nil {
		return nil, nil, err
	}
	result := <-s.events.albums
	if !result.status.OK() {
		return nil, nil, statusError("album listing", result.status)
	}
	return result.tree, result.dropped, nil
}

// createAlbum runs the asynchronous album creation to completion and returns
// the name the server actually assigned.
func (s *session) createAlbum(name, title, summary string, parent *galleryremote.Album) (string, error) {
	if err := s.client.CreateAlbum(name, title, summary, parent); err != nil {
		return "", err
	}
	result := <-s.events.created
	if !result.status.OK() {
		return "", statusError("album creation", result.status)
	}
	return result.name, nil
}

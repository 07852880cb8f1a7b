// Package galleryremote is a client for the Gallery photo-gallery server's
// remote-upload protocol. It speaks all three wire variants (the legacy G1
// form protocol, the G2 form protocol, and G2 XML-RPC), manages one logical
// session per client, models the remote album hierarchy with inherited
// permissions, and uploads items with progress reporting.
package galleryremote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/encoding"

	"github.com/anitschke/go-galleryremote/httpx"
	"github.com/anitschke/go-galleryremote/internal/charsetx"
	"github.com/anitschke/go-galleryremote/internal/grproto"
	"github.com/anitschke/go-galleryremote/internal/xmlrpc"
)

// GalleryType selects which wire-protocol variant the server speaks.
type GalleryType int

const (
	GalleryTypeG1 GalleryType = iota
	GalleryTypeG2
	GalleryTypeG2XMLRPC
)

func (t GalleryType) String() string {
	switch t {
	case GalleryTypeG1:
		return "G1"
	case GalleryTypeG2:
		return "G2"
	case GalleryTypeG2XMLRPC:
		return "G2-XMLRPC"
	default:
		return fmt.Sprintf("GalleryType(%d)", int(t))
	}
}

// requestedProtocolVersion is the Gallery Remote protocol version the client
// asks for on login.
const requestedProtocolVersion = "2.9"

var (
	ErrOperationInFlight = errors.New("another operation is already in flight")
	ErrClientClosed      = errors.New("the client has been closed")
	ErrNoDelegate        = errors.New("no delegate configured for asynchronous operations")
	ErrNoItem            = errors.New("no item to upload")
)

type opState int

const (
	stateIdle opState = iota
	stateAwaitingResponse
	stateCancelling
)

// Config describes the gallery endpoint a Client talks to.
type Config struct {
	// URL is the gallery's base URL, e.g. "http://example.com/gallery/". The
	// protocol entry point is derived from it based on Type.
	URL      string
	Username string
	// Password may be left empty and supplied later with SetPassword, for
	// callers that discover a stored credential is wrong.
	Password string
	Type     GalleryType

	// HTTPClient optionally replaces the transport. It must allow one
	// in-flight request at a time and honor request-context cancellation.
	HTTPClient httpx.Client
	// Delegate receives operation outcomes. Required before calling any of
	// the asynchronous operations.
	Delegate Delegate
	// Logger optionally enables structured logging; nil disables it.
	Logger *zerolog.Logger
}

// Client runs one logical session against one gallery endpoint. At most one
// operation is in flight per client; starting a second while one is pending
// fails with ErrOperationInFlight. A Client's methods are safe for concurrent
// use, but callers are expected to serialize the operations themselves.
type Client struct {
	url        *url.URL
	fullURL    *url.URL
	username   string
	typ        GalleryType
	httpClient httpx.Client
	delegate   Delegate
	logger     zerolog.Logger
	jar        http.CookieJar

	mu                   sync.Mutex
	password             string
	state                opState
	cancelInFlight       context.CancelFunc
	closed               bool
	loggedIn             bool
	majorVersion         int
	minorVersion         int
	enc                  encoding.Encoding // nil until sniffed; means UTF-8
	encName              string
	albums               *AlbumTree
	lastCreatedAlbumName string
}

// NewClient builds a client for the given endpoint. No network traffic
// happens until the first operation.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("gallery URL is required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gallery URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("gallery URL must be http or https, got %q", cfg.URL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	var fullURL *url.URL
	switch cfg.Type {
	case GalleryTypeG1:
		fullURL = u.JoinPath("gallery_remote2.php")
	case GalleryTypeG2, GalleryTypeG2XMLRPC:
		fullURL = u.JoinPath("main.php")
	default:
		return nil, fmt.Errorf("unknown gallery type %d", int(cfg.Type))
	}

	// G2 logins hand back a session cookie that every later command has to
	// present, so the client carries its own jar rather than relying on the
	// transport to have one.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Client{
		url:        u,
		fullURL:    fullURL,
		username:   cfg.Username,
		password:   cfg.Password,
		typ:        cfg.Type,
		httpClient: httpClient,
		delegate:   cfg.Delegate,
		logger:     logger.With().Str("gallery", u.Redacted()).Logger(),
		jar:        jar,
	}, nil
}

func (c *Client) URL() *url.URL     { return c.url }
func (c *Client) FullURL() *url.URL { return c.fullURL }
func (c *Client) URLString() string { return c.url.String() }
func (c *Client) Username() string  { return c.username }
func (c *Client) Type() GalleryType { return c.typ }

// IsGalleryV2 reports whether the endpoint speaks either of the G2 variants.
func (c *Client) IsGalleryV2() bool { return c.typ != GalleryTypeG1 }

// Identifier is a short human-readable handle for the endpoint, the host plus
// the gallery path.
func (c *Client) Identifier() string {
	return c.url.Host + strings.TrimSuffix(c.url.Path, "/")
}

// Info is a persistable snapshot of the endpoint identity, without the
// password.
type Info struct {
	URL      string
	Username string
	Type     GalleryType
}

func (c *Client) Info() Info {
	return Info{URL: c.url.String(), Username: c.username, Type: c.typ}
}

// SetPassword replaces the stored password, for callers that find out a saved
// credential is wrong. It fails while an operation is in flight.
func (c *Client) SetPassword(password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateIdle {
		return ErrOperationInFlight
	}
	c.password = password
	return nil
}

func (c *Client) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loggedIn
}

// MajorVersion and MinorVersion return the protocol version negotiated on
// login, 0.0 before a successful login.
func (c *Client) MajorVersion() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.majorVersion
}

func (c *Client) MinorVersion() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minorVersion
}

// SniffedEncoding names the text encoding inferred from the first successful
// response, or "utf-8" before one arrives.
func (c *Client) SniffedEncoding() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.encName == "" {
		return "utf-8"
	}
	return c.encName
}

// Albums returns the latest album-tree snapshot, or nil before the first
// successful GetAlbums.
func (c *Client) Albums() *AlbumTree {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.albums
}

// LastCreatedAlbumName is the machine name of the most recently created
// album. The server may alter the requested name for uniqueness, so this is
// the name to look for after the next GetAlbums.
func (c *Client) LastCreatedAlbumName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastCreatedAlbumName
}

// Close tears the client down. If an operation is in flight its transport is
// aborted and no callback fires for it.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	cancel := c.cancelInFlight
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Cancel aborts the operation in flight, if any. The operation's pending
// callback fires exactly once with StatusOperationCancelled, never with its
// original outcome, even if the transport had already produced bytes. Calling
// Cancel while idle is a no-op.
func (c *Client) Cancel() {
	c.mu.Lock()
	if c.state != stateAwaitingResponse {
		c.mu.Unlock()
		return
	}
	c.state = stateCancelling
	cancel := c.cancelInFlight
	c.mu.Unlock()
	c.logger.Debug().Msg("cancelling operation in flight")
	cancel()
}

// begin transitions Idle -> AwaitingResponse and returns the context the
// operation must run under.
func (c *Client) begin(parent context.Context) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	if c.state != stateIdle {
		return nil, ErrOperationInFlight
	}
	ctx, cancel := context.WithCancel(parent)
	c.state = stateAwaitingResponse
	c.cancelInFlight = cancel
	return ctx, nil
}

// deliver transitions back to Idle and resolves which single outcome the
// operation gets. commit runs under the lock, only when the operation truly
// succeeded (not cancelled, not torn down). suppressed means the client was
// closed mid-flight and no callback may fire.
func (c *Client) deliver(status StatusCode, commit func()) (final StatusCode, suppressed bool) {
	c.mu.Lock()
	cancelled := c.state == stateCancelling
	closed := c.closed
	c.state = stateIdle
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
	if !cancelled && !closed && status.OK() && commit != nil {
		commit()
	}
	c.mu.Unlock()

	switch {
	case closed:
		return status, true
	case cancelled:
		return StatusOperationCancelled, false
	default:
		return status, false
	}
}

// Login authenticates the session. On success the delegate's GalleryDidLogin
// fires and the negotiated protocol version and sniffed text encoding are
// recorded; on failure GalleryLoginFailed fires and the session stays logged
// out.
func (c *Client) Login() error {
	if c.delegate == nil {
		return ErrNoDelegate
	}
	ctx, err := c.begin(context.Background())
	if err != nil {
		return err
	}

	c.mu.Lock()
	creds := []field{
		{"protocol_version", requestedProtocolVersion},
		{"uname", c.username},
		{"password", c.password},
	}
	c.mu.Unlock()

	go func() {
		fields, status, encCommit := c.roundTrip(ctx, cmdLogin, creds, nil)

		major, minor := 0, 0
		if status.OK() {
			var ok bool
			major, minor, ok = parseServerVersion(fields[serverVersionKey])
			if !ok {
				// A login that does not tell us the protocol version is not a
				// login we can work with.
				status = StatusProtocolError
			}
		}

		final, suppressed := c.deliver(status, func() {
			if encCommit != nil {
				encCommit()
			}
			c.loggedIn = true
			c.majorVersion = major
			c.minorVersion = minor
		})
		if suppressed {
			return
		}
		if final.OK() {
			c.logger.Info().Int("major", major).Int("minor", minor).Msg("logged in")
			c.delegate.GalleryDidLogin(c)
		} else {
			c.logger.Warn().Stringer("status", final).
				Str("serverMessage", fields[grproto.StatusTextKey]).Msg("login failed")
			c.delegate.GalleryLoginFailed(c, final)
		}
	}()
	return nil
}

// Logout clears the session state locally: logged-in flag, negotiated
// version, sniffed encoding, album snapshot, and any G2 session cookies. The
// form protocols are stateless on the server side, so no round trip is made.
func (c *Client) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateIdle {
		return ErrOperationInFlight
	}
	c.loggedIn = false
	c.majorVersion = 0
	c.minorVersion = 0
	c.enc = nil
	c.encName = ""
	c.albums = nil
	c.lastCreatedAlbumName = ""
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return err
	}
	c.jar = jar
	return nil
}

// GetAlbums fetches the full album listing and rebuilds the album tree from
// it. The tree is replaced atomically on success; on failure the previous
// snapshot stays in place. Orphaned records (parent references the server
// never defined) are dropped from the tree and reported in the success
// callback.
func (c *Client) GetAlbums() error {
	if c.delegate == nil {
		return ErrNoDelegate
	}
	ctx, err := c.begin(context.Background())
	if err != nil {
		return err
	}

	go func() {
		fields, status, encCommit := c.roundTrip(ctx, cmdFetchAlbums, nil, nil)

		var tree *AlbumTree
		var dropped []AlbumRecord
		if status.OK() {
			if c.typ == GalleryTypeG2XMLRPC {
				fields = normalizeListingFields(fields)
			}
			tree, dropped = NewAlbumTree(albumRecords(fields))
		}

		final, suppressed := c.deliver(status, func() {
			if encCommit != nil {
				encCommit()
			}
			c.albums = tree
		})
		if suppressed {
			return
		}
		if final.OK() {
			for _, rec := range dropped {
				c.logger.Warn().Str("album", rec.Name).Str("parent", rec.Parent).
					Msg("dropping album with unresolvable parent from listing")
			}
			c.delegate.GalleryDidGetAlbums(c, tree, dropped)
		} else {
			c.delegate.GalleryGetAlbumsFailed(c, final)
		}
	}()
	return nil
}

// CreateAlbum asks the server to create an album under parent (top level when
// parent is nil). The client does not speculatively grow the album tree: the
// server may alter the requested name for uniqueness, so callers should
// GetAlbums again and look for LastCreatedAlbumName.
func (c *Client) CreateAlbum(name, title, summary string, parent *Album) error {
	if c.delegate == nil {
		return ErrNoDelegate
	}
	ctx, err := c.begin(context.Background())
	if err != nil {
		return err
	}

	parentName := "0" // protocol spelling for the gallery root
	if parent != nil {
		parentName = parent.Name
	}
	fields := []field{
		{"set_albumName", parentName},
		{"newAlbumName", name},
		{"newAlbumTitle", title},
		{"newAlbumDesc", summary},
	}

	go func() {
		respFields, status, encCommit := c.roundTrip(ctx, cmdNewAlbum, fields, nil)

		created := name
		if status.OK() {
			if v := respFields["album_name"]; v != "" {
				created = v
			}
		}

		final, suppressed := c.deliver(status, func() {
			if encCommit != nil {
				encCommit()
			}
			c.lastCreatedAlbumName = created
		})
		if suppressed {
			return
		}
		if final.OK() {
			c.logger.Info().Str("album", created).Msg("created album")
			c.delegate.GalleryDidCreateAlbum(c, created)
		} else {
			c.delegate.GalleryCreateAlbumFailed(c, final)
		}
	}()
	return nil
}

// AddItem uploads one item into the named album and blocks until the server
// answers. It is meant to run on a caller-managed upload worker; the rest of
// the client's operations are asynchronous. Cancel (or ctx) aborts the upload
// and yields StatusOperationCancelled. Progress is reported through
// item.Progress while the body streams out.
//
// The returned error covers usage problems only (client busy or closed, no
// item); the protocol outcome is always in the StatusCode.
func (c *Client) AddItem(ctx context.Context, albumName string, item *Item) (StatusCode, error) {
	if item == nil || len(item.Data) == 0 {
		return StatusNoFilename, ErrNoItem
	}
	opCtx, err := c.begin(ctx)
	if err != nil {
		return StatusUnknownError, err
	}

	fields := []field{
		{"set_albumName", albumName},
		{"userfile_name", item.Filename},
	}
	if item.Caption != "" {
		fields = append(fields, field{"caption", item.Caption})
	}
	if item.Description != "" {
		fields = append(fields, field{"extrafield.Description", item.Description})
	}

	_, status, encCommit := c.roundTrip(opCtx, cmdAddItem, fields, item)

	final, suppressed := c.deliver(status, encCommit)
	if suppressed {
		return StatusOperationCancelled, ErrClientClosed
	}
	if final.OK() {
		c.logger.Info().Str("album", albumName).Str("filename", item.Filename).
			Int("bytes", len(item.Data)).Msg("uploaded item")
	}
	return final, nil
}

// ParseResponseData decodes a raw response body with the session's current
// text encoding and extracts its status. Exposed so protocol peers built on
// top of the client can interpret responses the same way it does.
func (c *Client) ParseResponseData(data []byte) (map[string]string, StatusCode) {
	fields, status, _ := c.decodeResponse(data, "")
	return fields, status
}

// command is one protocol operation in each variant's spelling.
type command struct {
	g1     string // cmd field value for the G1 form protocol
	g2     string // cmd field value for the G2 form protocol
	method string // XML-RPC method name
}

var (
	cmdLogin       = command{"login", "login", "gallery.login"}
	cmdFetchAlbums = command{"fetch_albums_prune", "fetch-albums-prune", "gallery.fetch-albums"}
	cmdNewAlbum    = command{"new_album", "new-album", "gallery.new-album"}
	cmdAddItem     = command{"add_item", "add-item", "gallery.add-item"}
)

type field struct {
	name  string
	value string
}

const (
	serverVersionKey = "server_version"
	g2Controller     = "remote:GalleryRemote"
	fileFieldName    = "userfile"
)

// formName wraps a protocol parameter name the way the active variant wants
// it on the wire; G2 nests everything inside its g2_form array.
func (c *Client) formName(name string) string {
	if c.typ == GalleryTypeG2 {
		return "g2_form[" + name + "]"
	}
	return name
}

// buildBody encodes one command into a request body for the active variant.
func (c *Client) buildBody(cmd command, fields []field, item *Item) (body []byte, contentType string, err error) {
	if c.typ == GalleryTypeG2XMLRPC {
		members := make([]xmlrpc.Member, 0, len(fields)+1)
		for _, f := range fields {
			members = append(members, xmlrpc.Member{Name: f.name, Value: f.value})
		}
		if item != nil {
			members = append(members, xmlrpc.Member{Name: fileFieldName, Value: item.Data})
		}
		body, err = xmlrpc.EncodeMethodCall(cmd.method, members)
		return body, "text/xml", err
	}

	variation := httpx.URLEncoded
	if item != nil {
		variation = httpx.Multipart
	}
	b := httpx.NewRequestBuilder(variation, c.currentEncoding())

	if c.typ == GalleryTypeG2 {
		if err := b.AddString("g2_controller", g2Controller); err != nil {
			return nil, "", err
		}
		if err := b.AddString(c.formName("cmd"), cmd.g2); err != nil {
			return nil, "", err
		}
	} else {
		if err := b.AddString("cmd", cmd.g1); err != nil {
			return nil, "", err
		}
	}
	for _, f := range fields {
		if err := b.AddString(c.formName(f.name), f.value); err != nil {
			return nil, "", err
		}
	}
	if item != nil {
		ct := item.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		if err := b.AddData(item.Data, c.formName(fileFieldName), item.Filename, ct); err != nil {
			return nil, "", err
		}
	}
	return b.Finalize()
}

func (c *Client) currentEncoding() encoding.Encoding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc
}

// roundTrip sends one command and decodes the answer. Transport failures map
// to StatusCouldNotConnect (or StatusOperationCancelled when the context was
// cut), undecodable answers to StatusProtocolError. encCommit, when non-nil,
// must be run under the client lock if the operation is accepted; it records
// the text encoding sniffed from this response.
func (c *Client) roundTrip(ctx context.Context, cmd command, fields []field, item *Item) (grproto.Fields, StatusCode, func()) {
	body, contentType, err := c.buildBody(cmd, fields, item)
	if err != nil {
		c.logger.Error().Err(err).Str("cmd", cmd.g1).Msg("failed to build request")
		return nil, StatusUnknownError, nil
	}

	var bodyReader io.Reader = bytes.NewReader(body)
	if item != nil && item.Progress != nil {
		bodyReader = &progressReader{r: bodyReader, total: int64(len(body)), fn: item.Progress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fullURL.String(), bodyReader)
	if err != nil {
		return nil, StatusUnknownError, nil
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))
	for _, cookie := range c.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}

	c.logger.Debug().Str("cmd", cmd.g1).Int("bodyBytes", len(body)).Msg("sending gallery command")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, StatusOperationCancelled, nil
		}
		c.logger.Warn().Err(err).Msg("could not reach gallery")
		return nil, StatusCouldNotConnect, nil
	}
	defer resp.Body.Close()

	if rc := resp.Cookies(); len(rc) > 0 {
		c.jar.SetCookies(req.URL, rc)
	}

	if err := httpx.StatusError(resp); err != nil {
		c.logger.Warn().Err(err).Msg("gallery answered with an http error")
		return nil, StatusProtocolError, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, StatusOperationCancelled, nil
		}
		return nil, StatusCouldNotConnect, nil
	}

	return c.decodeResponse(raw, resp.Header.Get("Content-Type"))
}

// decodeResponse turns raw response bytes into fields plus a status. The
// returned commit records a newly sniffed text encoding; it is nil once the
// session encoding is pinned.
func (c *Client) decodeResponse(raw []byte, contentType string) (grproto.Fields, StatusCode, func()) {
	if c.typ == GalleryTypeG2XMLRPC {
		fields, err := xmlrpc.DecodeMethodResponse(raw)
		if err != nil {
			var fault *xmlrpc.Fault
			if errors.As(err, &fault) {
				// Some servers tunnel the protocol status through the fault
				// payload; honor it when it is recognizable.
				if n, ok := grproto.Fields(fault.Members).Status(); ok {
					return fault.Members, statusFromInt(n), nil
				}
				return fault.Members, StatusProtocolError, nil
			}
			c.logger.Warn().Err(err).Msg("undecodable xmlrpc response")
			return nil, StatusProtocolError, nil
		}
		return fieldsWithStatus(grproto.Fields(fields))
	}

	enc := c.currentEncoding()
	var encCommit func()
	if enc == nil {
		sniffed, name, _ := charsetx.Sniff(raw, contentType)
		enc = sniffed
		encCommit = func() {
			c.enc = sniffed
			c.encName = name
		}
	}

	text, err := charsetx.DecodeBytes(enc, raw)
	if err != nil {
		c.logger.Warn().Err(err).Msg("response does not decode in the session encoding")
		return nil, StatusProtocolError, nil
	}

	decoded, err := grproto.Decode(text)
	if err != nil {
		c.logger.Warn().Err(err).Msg("undecodable response body")
		return nil, StatusProtocolError, nil
	}

	fields, status := fieldsWithStatusOnly(decoded)
	return fields, status, encCommit
}

func fieldsWithStatus(fields grproto.Fields) (grproto.Fields, StatusCode, func()) {
	f, status := fieldsWithStatusOnly(fields)
	return f, status, nil
}

func fieldsWithStatusOnly(fields grproto.Fields) (grproto.Fields, StatusCode) {
	n, ok := fields.Status()
	if !ok {
		return fields, StatusProtocolError
	}
	return fields, statusFromInt(n)
}

// normalizeListingFields rewrites the XML-RPC album listing into the form
// protocol's numbered album.*.N field shape so both variants share one record
// extractor. The XML-RPC server answers with an array of album structs, which
// the codec flattens to albums.N.<member> keys; rewrite those (and the bare
// N.<member> shape of an unwrapped array) to album.<member>.N, and synthesize
// album_count when the server did not send one.
func normalizeListingFields(fields grproto.Fields) grproto.Fields {
	out := make(grproto.Fields, len(fields))
	maxIndex := 0
	for k, v := range fields {
		member, i, ok := splitListingKey(k)
		if !ok {
			out[k] = v
			continue
		}
		out[fmt.Sprintf("album.%s.%d", member, i)] = v
		if i > maxIndex {
			maxIndex = i
		}
	}
	if maxIndex > 0 {
		if _, ok := out["album_count"]; !ok {
			out["album_count"] = strconv.Itoa(maxIndex)
		}
	}
	return out
}

// splitListingKey recognizes albums.N.<member> and N.<member> keys for the
// album members the listing defines.
func splitListingKey(key string) (member string, index int, ok bool) {
	indexStr, member, found := strings.Cut(strings.TrimPrefix(key, "albums."), ".")
	if !found {
		return "", 0, false
	}
	n, err := strconv.Atoi(indexStr)
	if err != nil || n < 1 {
		return "", 0, false
	}
	switch member {
	case "name", "title", "summary", "parent", "perms.add", "perms.create_sub":
		return member, n, true
	default:
		return "", 0, false
	}
}

// albumRecords converts the wire listing into tree records.
func albumRecords(fields grproto.Fields) []AlbumRecord {
	wire := fields.AlbumRecords()
	records := make([]AlbumRecord, len(wire))
	for i, w := range wire {
		records[i] = AlbumRecord{
			Name:           w.Name,
			Title:          w.Title,
			Summary:        w.Summary,
			Parent:         w.Parent,
			CanAddItem:     w.CanAdd,
			CanAddSubAlbum: w.CanCreateSub,
		}
	}
	return records
}

// parseServerVersion parses the dotted "major.minor" pair a login response
// reports. Servers have been seen appending a patch component; anything past
// the second dot is ignored.
func parseServerVersion(v string) (major, minor int, ok bool) {
	majorStr, rest, found := strings.Cut(strings.TrimSpace(v), ".")
	if !found {
		return 0, 0, false
	}
	minorStr, _, _ := strings.Cut(rest, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return 0, 0, false
	}
	return major, minor, true
}

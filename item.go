package galleryremote

import "io"

// Item is one photo or video to upload. The client transports the bytes as
// given; it never inspects or transcodes them.
type Item struct {
	// Filename is the name the gallery should store the item under.
	Filename string
	// ContentType is the MIME type of Data, e.g. "image/jpeg".
	ContentType string
	// Data is the raw item body.
	Data []byte

	// Caption and Description are optional item metadata.
	Caption     string
	Description string

	// Progress, if non-nil, is called during the upload with the cumulative
	// number of body bytes handed to the transport and the total body size.
	// Calls are strictly increasing in sent and stop before AddItem returns.
	Progress func(sent, total int64)
}

// progressReader wraps the request body so that Item.Progress sees the bytes
// flow out. Only reads that advance the counter report, keeping the sequence
// strictly increasing.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}
